package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"elitecards_backend/internal/api"
)

// Context keys for the resolved identity.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// IdentityResolver resolves a verified user ID to the stored identity.
// Defined on the consumer side; the auth feature's repository satisfies it.
type IdentityResolver interface {
	// ResolveRole returns the role for the given user ID, or an error if
	// the user no longer exists.
	ResolveRole(ctx context.Context, userID uint) (string, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens,
// resolves the user through the credential store, and attaches the identity
// to the request context.
func AuthRequired(verifier Verifier, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			api.Abort(c, http.StatusUnauthorized, "Authorization token missing")
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify JWT signature and expiry
		userID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			api.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// 3. Resolve the user so downstream handlers see the current role
		role, err := users.ResolveRole(c.Request.Context(), userID)
		if err != nil {
			api.Abort(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// AdminRequired restricts access to users with the admin role.
// Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != "admin" {
			api.Abort(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID attached by AuthRequired.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// Role returns the authenticated user role attached by AuthRequired.
func Role(c *gin.Context) string {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
