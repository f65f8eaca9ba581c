// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrEmailTaken indicates that a user with the given email already exists.
	// This is returned during signup when attempting to create a duplicate user.
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrInvalidRole indicates a signup requested a role other than client or student.
	ErrInvalidRole = errors.New("invalid role, must be either client or student")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// This is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
