package models

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User holds the structure for an entry in the users collection
type User struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Name          string `json:"name"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Password      string `json:"password"`
	IsAdmin       bool   `json:"isAdmin"`
	Status        string `json:"status"`
	Department    string `json:"department,omitempty"`
	BadgeNumber   string `json:"badgeNumber,omitempty"`
	CreatedAt     string `json:"createdAt"`
	LastLogin     string `json:"lastLogin,omitempty"`
	VerifiedPhone bool   `json:"verifiedPhone,omitempty"`
}

// UserPatch carries the fields that can be merged into an existing user.
// Nil pointers leave the stored value untouched.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Name        *string
	Username    *string
	Email       *string
	Phone       *string
	Password    *string
	IsAdmin     *bool
	Status      *string
	Department  *string
	BadgeNumber *string
	LastLogin   *string
}
