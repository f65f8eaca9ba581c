package jwtmw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elitecards_backend/internal/feature/auth/domain"
)

type mockResolver struct {
	ResolveRoleFunc func(ctx context.Context, userID uint) (string, error)
}

func (m *mockResolver) ResolveRole(ctx context.Context, userID uint) (string, error) {
	if m.ResolveRoleFunc != nil {
		return m.ResolveRoleFunc(ctx, userID)
	}
	return "client", nil
}

func newTestRouter(verifier Verifier, users IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(verifier, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c), "role": Role(c)})
	})
	r.GET("/admin", AuthRequired(verifier, users), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t.Run("missing header", func(t *testing.T) {
		r := newTestRouter(m, &mockResolver{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization token missing")
	})

	t.Run("non-bearer header", func(t *testing.T) {
		r := newTestRouter(m, &mockResolver{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		r := newTestRouter(m, &mockResolver{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("deleted user is rejected even with a valid token", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveRoleFunc: func(ctx context.Context, userID uint) (string, error) {
				return "", domain.ErrUserNotFound
			},
		}
		r := newTestRouter(m, resolver)
		token, err := m.GenerateToken(7, "gone@example.com")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveRoleFunc: func(ctx context.Context, userID uint) (string, error) {
				assert.Equal(t, uint(7), userID)
				return "student", nil
			},
		}
		r := newTestRouter(m, resolver)
		token, err := m.GenerateToken(7, "user@example.com")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userID":7,"role":"student"}`, w.Body.String())
	})
}

func TestAdminRequired(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken(1, "user@example.com")
	require.NoError(t, err)

	t.Run("non-admin gets 403", func(t *testing.T) {
		r := newTestRouter(m, &mockResolver{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin access required")
	})

	t.Run("admin passes", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveRoleFunc: func(ctx context.Context, userID uint) (string, error) {
				return "admin", nil
			},
		}
		r := newTestRouter(m, resolver)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
