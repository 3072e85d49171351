package model

import "time"

// Role tags a user account with its access level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// DateLayout is the wire format of a user's date of birth.
const DateLayout = "2006-01-02"

// User represents a registered storefront account.
type User struct {
	ID           int64
	Name         string
	Email        string
	Username     string
	Role         Role
	PasswordHash string
	DOB          *time.Time
	Points       int64
	CreatedAt    time.Time
}

// NewUser carries the fields persisted on registration.
type NewUser struct {
	Name         string
	Email        string
	Username     string
	Role         Role
	PasswordHash string
}

// Registration is the plaintext registration request.
type Registration struct {
	Name     string
	Email    string
	Username string
	Role     Role
	Password string
}

// NormalizeRole falls back to RoleCustomer when no role was supplied.
func NormalizeRole(r Role) Role {
	if r == "" {
		return RoleCustomer
	}
	return r
}

// FormatDOB renders the date of birth, or an empty string when unknown.
func (u *User) FormatDOB() string {
	if u == nil || u.DOB == nil {
		return ""
	}
	return u.DOB.Format(DateLayout)
}
