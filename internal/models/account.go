package models

import (
	"time"
)

// Role is the closed set of account roles. Handlers never compare raw
// strings; they go through HasRole or auth.RequireRole.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleProvider Role = "PROVIDER"
	RoleUser     Role = "USER"
)

// ParseRole maps a wire value onto the closed role set
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleProvider, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}

// Registration status values. The mixed casing is the persisted wire
// format and must not be normalized.
const (
	StatusPending         = "PENDING"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
)

// Account represents a provider, user or admin account. Providers carry
// the address block; users and admins leave it empty.
type Account struct {
	ID              string
	Name            string
	Email           string
	Mobile          string
	AlternateMobile *string
	Address         string
	CityID          *string
	StateID         *string
	Zipcode         string
	PasswordHash    string
	Role            Role
	IsActive        bool
	EmailVerified   bool
	MobileVerified  bool
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasRole reports whether the account holds the given role
func (a *Account) HasRole(role Role) bool {
	return a.Role == role
}
