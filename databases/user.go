package databases

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// Bootstrap admin created when the users collection is empty.
const (
	bootstrapAdminID       = 1
	bootstrapAdminUsername = "admin"
	bootstrapAdminEmail    = "admin@carseizure.com"
	bootstrapAdminPhone    = "+919876543210"
	bootstrapAdminPassword = "admin123"
)

// UserDatabase contains the methods to use with the users collection
type UserDatabase struct {
	store storage.KeyValueStore
	audit AuditTrail
}

// NewUserDatabase initializes a new instance of the user database with the
// provided store. audit may be nil when mutations should not be logged.
func NewUserDatabase(store storage.KeyValueStore, audit AuditTrail) *UserDatabase {
	return &UserDatabase{store: store, audit: audit}
}

// All returns every user in insertion order. An empty collection is
// bootstrapped with the default admin account first.
func (u *UserDatabase) All() ([]models.User, error) {
	users, err := loadList[models.User](u.store, UsersKey)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return users, nil
	}

	admin, err := defaultAdmin()
	if err != nil {
		return nil, err
	}
	users = []models.User{admin}
	if err := storage.SetJSON(u.store, UsersKey, users); err != nil {
		return nil, err
	}
	zap.S().Infow("default admin account created",
		"username", bootstrapAdminUsername,
		"email", bootstrapAdminEmail,
	)
	return users, nil
}

func defaultAdmin() (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:        bootstrapAdminID,
		FirstName: "Admin",
		LastName:  "User",
		Name:      "Admin User",
		Username:  bootstrapAdminUsername,
		Email:     bootstrapAdminEmail,
		Phone:     bootstrapAdminPhone,
		Password:  string(hash),
		IsAdmin:   true,
		Status:    models.UserStatusActive,
		CreatedAt: nowISO(),
	}, nil
}

// Add validates and appends a new user. The password is stored as a
// bcrypt hash; the id is assigned as epoch-ms when unset.
func (u *UserDatabase) Add(user models.User) (models.User, error) {
	users, err := u.All()
	if err != nil {
		return models.User{}, err
	}

	if user.Name == "" {
		if user.FirstName == "" && user.LastName == "" {
			return models.User{}, &models.ValidationError{Field: "name", Reason: "required"}
		}
		user.Name = user.FirstName + " " + user.LastName
	}
	if user.Username == "" && user.Email == "" && user.Phone == "" {
		return models.User{}, &models.ValidationError{Field: "username", Reason: "at least one of username, email or phone is required"}
	}
	if err := u.checkPassword(user.Password); err != nil {
		return models.User{}, err
	}
	if err := checkUnique(users, user, 0); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hash)

	var last int64
	for _, existing := range users {
		if existing.ID > last {
			last = existing.ID
		}
	}
	if user.ID == 0 {
		user.ID = nextEpochID(last)
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.CreatedAt == "" {
		user.CreatedAt = nowISO()
	}

	users = append(users, user)
	if err := storage.SetJSON(u.store, UsersKey, users); err != nil {
		return models.User{}, err
	}
	if u.audit != nil {
		u.audit.Record("user_created", "User "+user.Name, "New user account created", models.SeverityInfo)
	}
	return user, nil
}

// Update merges patch into the user with the given id and rewrites the
// collection.
func (u *UserDatabase) Update(id int64, patch models.UserPatch) (models.User, error) {
	users, err := u.All()
	if err != nil {
		return models.User{}, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, &models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}

	merged := users[idx]
	applyPatch(&merged, patch)
	if patch.Password != nil {
		if err := u.checkPassword(*patch.Password); err != nil {
			return models.User{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		merged.Password = string(hash)
	}
	if merged.Status != models.UserStatusActive && merged.Status != models.UserStatusInactive {
		return models.User{}, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", merged.Status)}
	}
	if err := checkUnique(users, merged, id); err != nil {
		return models.User{}, err
	}

	users[idx] = merged
	if err := storage.SetJSON(u.store, UsersKey, users); err != nil {
		return models.User{}, err
	}
	if u.audit != nil {
		u.audit.Record("user_updated", "User "+merged.Name, "User profile updated", models.SeverityInfo)
	}
	return merged, nil
}

// Remove deletes the user with the given id.
func (u *UserDatabase) Remove(id int64) error {
	users, err := u.All()
	if err != nil {
		return err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}

	removed := users[idx]
	users = append(users[:idx], users[idx+1:]...)
	if err := storage.SetJSON(u.store, UsersKey, users); err != nil {
		return err
	}
	if u.audit != nil {
		u.audit.Record("user_deleted", "User "+removed.Name, "User account deleted", models.SeverityWarning)
	}
	return nil
}

// SetStatus toggles a user between active and inactive.
func (u *UserDatabase) SetStatus(id int64, status string) (models.User, error) {
	return u.Update(id, models.UserPatch{Status: &status})
}

// ByID returns the user with the given id.
func (u *UserDatabase) ByID(id int64) (models.User, error) {
	user, ok, err := u.Find(func(x models.User) bool { return x.ID == id })
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, &models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return user, nil
}

// ByIdentifier returns the user matching identifier by email or username.
func (u *UserDatabase) ByIdentifier(identifier string) (models.User, bool, error) {
	return u.Find(func(x models.User) bool {
		return (x.Email != "" && x.Email == identifier) || (x.Username != "" && x.Username == identifier)
	})
}

// ByPhone returns the user with the given phone number.
func (u *UserDatabase) ByPhone(phone string) (models.User, bool, error) {
	return u.Find(func(x models.User) bool { return x.Phone != "" && x.Phone == phone })
}

// Authenticate matches identifier by email or username and compares the
// password against the stored bcrypt hash.
func (u *UserDatabase) Authenticate(identifier, password string) (models.User, error) {
	user, ok, err := u.ByIdentifier(identifier)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, &models.AuthError{Reason: "invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, &models.AuthError{Reason: "invalid credentials"}
	}
	return user, nil
}

// Find returns the first user matching the predicate.
func (u *UserDatabase) Find(pred func(models.User) bool) (models.User, bool, error) {
	users, err := u.All()
	if err != nil {
		return models.User{}, false, err
	}
	for _, user := range users {
		if pred(user) {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

// Filter returns every user matching the predicate, in insertion order.
func (u *UserDatabase) Filter(pred func(models.User) bool) ([]models.User, error) {
	users, err := u.All()
	if err != nil {
		return nil, err
	}
	var out []models.User
	for _, user := range users {
		if pred(user) {
			out = append(out, user)
		}
	}
	return out, nil
}

// checkPassword enforces the configured minimum password length.
func (u *UserDatabase) checkPassword(password string) error {
	minLen := models.DefaultSystemConfig().PasswordMinLength
	var cfg models.SystemConfig
	if err := storage.GetJSON(u.store, SystemConfigKey, &cfg); err == nil && cfg.PasswordMinLength > 0 {
		minLen = cfg.PasswordMinLength
	}
	if len(password) < minLen {
		return &models.ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minLen)}
	}
	return nil
}

// checkUnique enforces username/email/phone uniqueness, skipping the
// record with selfID (the one being updated).
func checkUnique(users []models.User, candidate models.User, selfID int64) error {
	for _, existing := range users {
		if existing.ID == selfID {
			continue
		}
		if candidate.Username != "" && existing.Username == candidate.Username {
			return &models.ValidationError{Field: "username", Reason: "already taken"}
		}
		if candidate.Email != "" && existing.Email == candidate.Email {
			return &models.ValidationError{Field: "email", Reason: "already registered"}
		}
		if candidate.Phone != "" && existing.Phone == candidate.Phone {
			return &models.ValidationError{Field: "phone", Reason: "already registered"}
		}
	}
	return nil
}

func applyPatch(user *models.User, patch models.UserPatch) {
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.IsAdmin != nil {
		user.IsAdmin = *patch.IsAdmin
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.BadgeNumber != nil {
		user.BadgeNumber = *patch.BadgeNumber
	}
	if patch.LastLogin != nil {
		user.LastLogin = *patch.LastLogin
	}
}

// TouchLastLogin stamps lastLogin without an audit entry; the login
// itself is what gets audited.
func (u *UserDatabase) TouchLastLogin(id int64) (models.User, error) {
	users, err := u.All()
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].LastLogin = nowISO()
			if err := storage.SetJSON(u.store, UsersKey, users); err != nil {
				return models.User{}, err
			}
			return users[i], nil
		}
	}
	return models.User{}, &models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
}
