// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"elitecards_backend/internal/api"
	"elitecards_backend/internal/feature/auth/domain"
	"elitecards_backend/internal/feature/auth/domain/entity"
	"elitecards_backend/internal/feature/auth/transport/http/dto"
	"elitecards_backend/internal/feature/auth/usecase"
	jwtmw "elitecards_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたメールアドレス・パスワード・ロールで新規ユーザーを登録します。
	Signup(ctx context.Context, email, password, role string) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Me は認証済みユーザーの現在の情報を取得します。
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// userPayload はレスポンスに載せるユーザー情報です。パスワードハッシュは含めません。
type userPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ロール不正・メール重複時は400を返却
// - 成功時はユーザーとトークン付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	result, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			api.Fail(c, http.StatusBadRequest, "Invalid role. Must be either client or student", nil)
		case errors.Is(err, domain.ErrEmailTaken):
			api.Fail(c, http.StatusBadRequest, "User already exists with this email", nil)
		default:
			api.Fail(c, http.StatusInternalServerError, "Error in signup", err)
		}
		return
	}

	slog.Info("user signup successful", "email", req.Email, "role", result.User.Role)
	api.OK(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  userPayload{ID: result.User.ID, Email: result.User.Email, Role: result.User.Role},
		"token": result.Token,
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 管理者ブートストラップ経路もこのエンドポイントを通ります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, "Invalid credentials", nil)
		return
	}

	message := "Login successful"
	if result.User.Role == "admin" {
		message = "Admin login successful"
	}
	slog.Info("user login successful", "email", req.Email, "role", result.User.Role)
	api.OK(c, http.StatusOK, message, gin.H{
		"user":  userPayload{ID: result.User.ID, Email: result.User.Email, Role: result.User.Role},
		"token": result.Token,
	})
}

// Me は認証済みユーザー自身の情報を返します。AuthRequiredの後段で動作します。
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error fetching user data", err)
		return
	}
	api.OK(c, http.StatusOK, "", gin.H{"user": user})
}
