// Package domain defines domain-level errors for the password-reset feature.
package domain

import "errors"

// Domain errors for the OTP reset flow. Validation errors are returned before
// any side effect; ErrEmailDelivery is surfaced distinctly from storage errors
// because the OTP may already be persisted when dispatch fails.
var (
	// ErrInvalidOTP indicates the submitted code does not match the stored one.
	ErrInvalidOTP = errors.New("invalid OTP")

	// ErrOTPExpired indicates the stored code's expiry has elapsed.
	ErrOTPExpired = errors.New("OTP has expired")

	// ErrPasswordMismatch indicates newPassword and confirmPassword differ.
	ErrPasswordMismatch = errors.New("new password and confirm password do not match")

	// ErrWeakPassword indicates the new password is shorter than 6 characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters long")

	// ErrEmailDelivery indicates OTP mail dispatch failed after the code was
	// already persisted. The user can recover via resend.
	ErrEmailDelivery = errors.New("failed to send OTP email")
)
