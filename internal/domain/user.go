package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"
)

// DefaultRole is assigned when registration omits a role.
const DefaultRole = RoleStaff

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleStaff, RolePatient:
		return true
	}
	return false
}

// User is the domain model for an account.
//
// ResetPasswordToken and ResetPasswordExpires are either both nil or both
// set; consuming or overwriting a token always updates the pair together.
type User struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	Role                 Role
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasActiveResetToken reports whether a non-expired reset token is set.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetPasswordToken != nil && u.ResetPasswordExpires != nil && now.Before(*u.ResetPasswordExpires)
}

// ClearResetToken drops the reset token pair.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
}
