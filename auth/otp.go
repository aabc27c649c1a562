package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// Ephemeral keys for outstanding OTP records, tab-scoped.
const (
	LoginOTPKey  = "currentOTP"
	SignupOTPKey = "signupOTP"
)

// OTPState is the explicit step of an OTP flow, independent of any
// rendering.
type OTPState int

// OTP flow states.
const (
	AwaitingPhone OTPState = iota
	AwaitingCode
	Verified
	Expired
	Locked
)

const (
	otpDigits      = 6
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 3
	resendCooldown = 30 * time.Second
)

// otpRecord is the persisted shape of an outstanding code. Field names
// match the layout the browser build wrote to sessionStorage.
type otpRecord struct {
	Phone    string `json:"phone"`
	Code     string `json:"otp"`
	IssuedAt int64  `json:"timestamp"` // epoch ms
	Attempts int    `json:"attempts"`
}

// OTPFlow drives one phone verification: issue a code, verify it within
// the expiry window and attempt budget, and release the resend timer on
// every exit path. This is a local simulation standing in for a real SMS
// provider.
type OTPFlow struct {
	ephemeral storage.KeyValueStore
	key       string
	now       func() time.Time

	mu          sync.Mutex
	state       OTPState
	resendTimer *time.Timer
	canResend   bool
}

// NewLoginOTP returns the OTP flow for phone login.
func NewLoginOTP(ephemeral storage.KeyValueStore) *OTPFlow {
	return newOTPFlow(ephemeral, LoginOTPKey)
}

// NewSignupOTP returns the OTP flow for phone signup verification.
func NewSignupOTP(ephemeral storage.KeyValueStore) *OTPFlow {
	return newOTPFlow(ephemeral, SignupOTPKey)
}

func newOTPFlow(ephemeral storage.KeyValueStore, key string) *OTPFlow {
	return &OTPFlow{
		ephemeral: ephemeral,
		key:       key,
		now:       time.Now,
		state:     AwaitingPhone,
	}
}

// Send issues a fresh 6-digit code for phone and starts the resend
// cooldown. The code is returned so a delivery collaborator can carry
// it; here it is only logged.
func (o *OTPFlow) Send(phone string) (string, error) {
	if len(phone) < 10 {
		return "", &models.ValidationError{Field: "phone", Reason: "must be a valid phone number"}
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	record := otpRecord{
		Phone:    phone,
		Code:     code,
		IssuedAt: o.now().UnixMilli(),
	}
	if err := storage.SetJSON(o.ephemeral, o.key, record); err != nil {
		return "", err
	}

	o.mu.Lock()
	o.state = AwaitingCode
	o.restartCooldownLocked()
	o.mu.Unlock()

	// stand-in for SMS delivery
	zap.S().Infow("otp issued", "phone", phone)
	return code, nil
}

// Verify checks an entered code against the outstanding record. Wrong
// codes consume attempts; three failures lock the record out until a new
// one is issued, and codes older than five minutes expire.
func (o *OTPFlow) Verify(code string) error {
	if len(code) != otpDigits {
		return &models.AuthError{Reason: "please enter the complete code"}
	}

	var record otpRecord
	if err := storage.GetJSON(o.ephemeral, o.key, &record); err != nil {
		o.setState(Expired)
		return &models.AuthError{Reason: "code expired, request a new one"}
	}

	if o.now().UnixMilli()-record.IssuedAt > otpTTL.Milliseconds() {
		o.abandon(Expired)
		return &models.AuthError{Reason: "code expired, request a new one"}
	}

	if code == record.Code {
		o.abandon(Verified)
		return nil
	}

	record.Attempts++
	if record.Attempts >= otpMaxAttempts {
		o.abandon(Locked)
		return &models.AuthError{Reason: "too many failed attempts, request a new code"}
	}
	if err := storage.SetJSON(o.ephemeral, o.key, record); err != nil {
		return err
	}
	return &models.AuthError{
		Reason: fmt.Sprintf("invalid code, %d attempts remaining", otpMaxAttempts-record.Attempts),
	}
}

// Resend replaces the outstanding code once the 30-second cooldown has
// elapsed, resetting the attempt budget.
func (o *OTPFlow) Resend() (string, error) {
	o.mu.Lock()
	ready := o.canResend
	o.mu.Unlock()
	if !ready {
		return "", &models.AuthError{Reason: "resend not available yet"}
	}

	var record otpRecord
	if err := storage.GetJSON(o.ephemeral, o.key, &record); err != nil {
		return "", &models.AuthError{Reason: "no code outstanding"}
	}
	return o.Send(record.Phone)
}

// Cancel abandons the flow: the ephemeral record is removed and the
// resend timer released. Safe to call on any exit path, including after
// success.
func (o *OTPFlow) Cancel() {
	o.abandon(AwaitingPhone)
}

// State reports the flow's current step.
func (o *OTPFlow) State() OTPState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Phone returns the number the outstanding code was issued for.
func (o *OTPFlow) Phone() (string, bool) {
	var record otpRecord
	if err := storage.GetJSON(o.ephemeral, o.key, &record); err != nil {
		return "", false
	}
	return record.Phone, true
}

// abandon removes the ephemeral record and stops the resend timer, then
// records the terminal state.
func (o *OTPFlow) abandon(state OTPState) {
	o.ephemeral.Remove(o.key)
	o.mu.Lock()
	if o.resendTimer != nil {
		o.resendTimer.Stop()
		o.resendTimer = nil
	}
	o.canResend = false
	o.state = state
	o.mu.Unlock()
}

func (o *OTPFlow) setState(state OTPState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func (o *OTPFlow) restartCooldownLocked() {
	if o.resendTimer != nil {
		o.resendTimer.Stop()
	}
	o.canResend = false
	o.resendTimer = time.AfterFunc(resendCooldown, func() {
		o.mu.Lock()
		o.canResend = true
		o.mu.Unlock()
	})
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
