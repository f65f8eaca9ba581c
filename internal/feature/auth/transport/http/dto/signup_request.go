// Package dto defines the request payloads for the auth endpoints.
package dto

// SignupRequest is the payload for POST /api/auth/signup.
// Role is optional; the usecase defaults it to client.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}
