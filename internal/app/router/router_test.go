package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"elitecards_backend/internal/feature/auth/domain/entity"
	authhandler "elitecards_backend/internal/feature/auth/transport/handler"
	authusecase "elitecards_backend/internal/feature/auth/usecase"
	passwordhandler "elitecards_backend/internal/feature/password/transport/handler"
)

type stubAuthUsecase struct{}

func (stubAuthUsecase) Signup(ctx context.Context, email, password, role string) (*authusecase.AuthResult, error) {
	return nil, assert.AnError
}

func (stubAuthUsecase) Login(ctx context.Context, email, password string) (*authusecase.AuthResult, error) {
	return nil, assert.AnError
}

func (stubAuthUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return nil, assert.AnError
}

// stubPasswordUsecase records which operations the route tree dispatched.
type stubPasswordUsecase struct {
	called []string
}

func (s *stubPasswordUsecase) ForgotPassword(ctx context.Context, email string) error {
	s.called = append(s.called, "forgot")
	return nil
}

func (s *stubPasswordUsecase) VerifyOTP(ctx context.Context, email, otp string) error {
	s.called = append(s.called, "verify")
	return nil
}

func (s *stubPasswordUsecase) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error {
	s.called = append(s.called, "reset")
	return nil
}

func (s *stubPasswordUsecase) ResendOTP(ctx context.Context, email string) error {
	s.called = append(s.called, "resend")
	return nil
}

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (uint, error) { return 0, assert.AnError }

type stubResolver struct{}

func (stubResolver) ResolveRole(ctx context.Context, userID uint) (string, error) {
	return "", assert.AnError
}

type stubBlobStore struct{}

func (stubBlobStore) Upload(ctx context.Context, scope, filename, contentType string, body io.Reader) (string, error) {
	return "", assert.AnError
}

func (stubBlobStore) DeleteByURL(ctx context.Context, objectURL string) error { return nil }

type stubMailer struct{}

func (stubMailer) Send(ctx context.Context, to, subject, html string) (string, error) {
	return "msg-1", nil
}

func (stubMailer) SendBroadcast(ctx context.Context, bcc []string, subject, html string) (string, error) {
	return "msg-1", nil
}

func newEngine(t *testing.T, passwords *stubPasswordUsecase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open in-memory database")

	return New(Deps{
		DB:       db,
		Auth:     authhandler.NewAuthHandler(stubAuthUsecase{}),
		Password: passwordhandler.NewPasswordHandler(passwords),
		Verifier: stubVerifier{},
		Users:    stubResolver{},
		Blobs:    stubBlobStore{},
		Mailer:   stubMailer{},
	})
}

func routeSet(r *gin.Engine) map[string]bool {
	out := make(map[string]bool)
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestRouter_PasswordRoutePaths(t *testing.T) {
	passwords := &stubPasswordUsecase{}
	r := newEngine(t, passwords)
	routes := routeSet(r)

	for _, want := range []string{
		"POST /api/password/forgot",
		"POST /api/password/verify-otp",
		"POST /api/password/reset",
		"POST /api/password/resend-otp",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
	assert.False(t, routes["POST /api/password/forgot-password"])
	assert.False(t, routes["POST /api/password/reset-password"])

	// The documented paths reach the usecase end to end.
	for path, body := range map[string]gin.H{
		"/api/password/forgot": {"email": "a@example.com"},
		"/api/password/reset": {
			"email": "a@example.com", "otp": "123456",
			"newPassword": "secret1", "confirmPassword": "secret1",
		},
	} {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(body)
		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
	}
	assert.ElementsMatch(t, []string{"forgot", "reset"}, passwords.called)
}

func TestRouter_CoreGroups(t *testing.T) {
	r := newEngine(t, &stubPasswordUsecase{})
	routes := routeSet(r)

	for _, want := range []string{
		"GET /healthz",
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"GET /api/auth/me",
		"POST /api/inquiries",
		"GET /api/profile/public/:id",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRouter_Healthz(t *testing.T) {
	r := newEngine(t, &stubPasswordUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
