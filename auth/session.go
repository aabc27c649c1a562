// Package auth implements the session gate: credential login, the
// current-user session record, the page access guard, and the OTP
// sub-flow for phone login and signup.
package auth

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/vehicleseizure/seizure-core/databases"
	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// State is the session state for the active tab.
type State int

// Session states.
const (
	Anonymous State = iota
	AuthenticatedOfficer
	AuthenticatedAdmin
)

// Gate owns all session state. No ambient globals: handlers receive the
// gate and ask it for the current user.
type Gate struct {
	store     storage.KeyValueStore // persisted namespace
	ephemeral storage.KeyValueStore // tab-scoped namespace
	users     *databases.UserDatabase
	audit     databases.AuditTrail
}

// NewGate wires the session gate over the persisted and ephemeral
// stores. audit may be nil.
func NewGate(store, ephemeral storage.KeyValueStore, users *databases.UserDatabase, audit databases.AuditTrail) *Gate {
	return &Gate{store: store, ephemeral: ephemeral, users: users, audit: audit}
}

// Current resolves the session record, Anonymous when none is stored.
func (g *Gate) Current() (models.User, bool) {
	var user models.User
	if err := storage.GetJSON(g.store, databases.CurrentUserKey, &user); err != nil {
		return models.User{}, false
	}
	if user.ID == 0 {
		return models.User{}, false
	}
	return user, true
}

// State reports the session state derived from the current user record.
func (g *Gate) State() State {
	user, ok := g.Current()
	switch {
	case !ok:
		return Anonymous
	case user.IsAdmin:
		return AuthenticatedAdmin
	default:
		return AuthenticatedOfficer
	}
}

// LoginWithEmail authenticates by email or username plus password. On
// success lastLogin is stamped, the full user record becomes the session,
// and the identifier is optionally remembered for the login form.
func (g *Gate) LoginWithEmail(identifier, password string, remember bool) (models.User, error) {
	user, err := g.users.Authenticate(identifier, password)
	if err != nil {
		if g.audit != nil {
			g.audit.Record("login_failed", "Email/Username Login",
				"Failed login attempt: "+identifier, models.SeverityWarning)
		}
		return models.User{}, err
	}
	if remember {
		raw, _ := json.Marshal(identifier)
		_ = g.store.Set(databases.RememberedUserKey, raw)
	}
	return g.establish(user, "Email/Username Login", "User logged in: "+identifier)
}

// LoginWithPhone authenticates a phone number whose OTP has already been
// verified by the caller's OTP flow.
func (g *Gate) LoginWithPhone(phone string) (models.User, error) {
	user, ok, err := g.users.ByPhone(phone)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, &models.AuthError{Reason: "phone number not registered"}
	}
	return g.establish(user, "Phone Login", "User logged in via phone: "+phone)
}

func (g *Gate) establish(user models.User, resource, details string) (models.User, error) {
	user, err := g.users.TouchLastLogin(user.ID)
	if err != nil {
		return models.User{}, err
	}
	if err := storage.SetJSON(g.store, databases.CurrentUserKey, user); err != nil {
		return models.User{}, err
	}
	if g.audit != nil {
		g.audit.Record("login_success", resource, details, models.SeverityInfo)
	}
	zap.S().Infow("session established",
		"userId", user.ID,
		"admin", user.IsAdmin,
	)
	return user, nil
}

// Logout clears the session record and all tab-scoped state.
func (g *Gate) Logout() {
	if user, ok := g.Current(); ok && g.audit != nil {
		identifier := user.Email
		if identifier == "" {
			identifier = user.Username
		}
		if identifier == "" {
			identifier = user.Phone
		}
		g.audit.Record("logout", "User Logout", "User logged out: "+identifier, models.SeverityInfo)
	}
	g.store.Remove(databases.CurrentUserKey)
	g.ephemeral.Clear()
}

// RememberedIdentifier returns the identifier saved by a remember-me
// login, for pre-filling the login form.
func (g *Gate) RememberedIdentifier() (string, bool) {
	raw, err := g.store.Get(databases.RememberedUserKey)
	if errors.Is(err, storage.ErrAbsent) {
		return "", false
	}
	if err != nil {
		return "", false
	}
	var identifier string
	if err := json.Unmarshal(raw, &identifier); err != nil || identifier == "" {
		return "", false
	}
	return identifier, true
}
