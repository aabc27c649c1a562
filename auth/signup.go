package auth

import (
	"time"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// SignupDataKey holds staged signup details while the phone is verified.
const SignupDataKey = "signupData"

// SignupData is the staged phone-signup form, persisted tab-scoped until
// the OTP is verified.
type SignupData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"isAdmin"`
	Timestamp int64  `json:"timestamp"`
}

// BeginPhoneSignup validates and stages the signup details, then issues
// a verification code through flow. The account is not created until
// CompletePhoneSignup.
func (g *Gate) BeginPhoneSignup(data SignupData, flow *OTPFlow) (string, error) {
	switch {
	case data.FirstName == "" || data.LastName == "":
		return "", &models.ValidationError{Field: "name", Reason: "required"}
	case len(data.Phone) < 10:
		return "", &models.ValidationError{Field: "phone", Reason: "must be a valid phone number"}
	case len(data.Password) < 6:
		return "", &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	if _, exists, err := g.users.ByPhone(data.Phone); err != nil {
		return "", err
	} else if exists {
		return "", &models.ValidationError{Field: "phone", Reason: "already registered"}
	}

	data.Timestamp = nowMilli()
	if err := storage.SetJSON(g.ephemeral, SignupDataKey, data); err != nil {
		return "", err
	}
	return flow.Send(data.Phone)
}

// CompletePhoneSignup verifies the entered code and creates the staged
// account with a phone-derived username and a verified phone flag. A
// locked-out flow also discards the staged details, forcing the signup
// to start over.
func (g *Gate) CompletePhoneSignup(flow *OTPFlow, code string) (models.User, error) {
	if err := flow.Verify(code); err != nil {
		if flow.State() == Locked {
			g.ephemeral.Remove(SignupDataKey)
		}
		return models.User{}, err
	}

	var data SignupData
	if err := storage.GetJSON(g.ephemeral, SignupDataKey, &data); err != nil {
		return models.User{}, &models.AuthError{Reason: "signup session expired"}
	}

	user, err := g.users.Add(models.User{
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Username:      "user_" + suffix(data.Phone, 6),
		Phone:         data.Phone,
		Password:      data.Password,
		IsAdmin:       data.IsAdmin,
		VerifiedPhone: true,
	})
	if err != nil {
		return models.User{}, err
	}
	g.ephemeral.Remove(SignupDataKey)
	return user, nil
}

// CancelPhoneSignup abandons the signup: the OTP record, its timer and
// the staged details are all released.
func (g *Gate) CancelPhoneSignup(flow *OTPFlow) {
	flow.Cancel()
	g.ephemeral.Remove(SignupDataKey)
}

func nowMilli() int64 { return time.Now().UnixMilli() }

func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
