// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles a user can hold. RoleClient is the signup default.
const (
	RoleClient  = "client"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered account in the system.
// It carries the authentication credentials and the password-reset OTP state.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// It never leaves the backend.
	Password string `gorm:"size:255;not null" json:"-"`

	// Role is one of client, student or admin. Never empty.
	Role string `gorm:"size:16;not null;default:client" json:"role"`

	// ResetOTP and ResetOTPExpiresAt are both set on OTP issuance and both
	// cleared on a successful password reset.
	ResetOTP          string     `gorm:"size:6" json:"-"`
	ResetOTPExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one a caller may request at signup.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleStudent
}
