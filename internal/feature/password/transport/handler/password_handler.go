// Package handler はパスワードリセットフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"elitecards_backend/internal/api"
	authdomain "elitecards_backend/internal/feature/auth/domain"
	"elitecards_backend/internal/feature/password/domain"
	"elitecards_backend/internal/feature/password/transport/http/dto"
)

// PasswordUsecase はOTPリセットフローのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PasswordUsecase interface {
	// ForgotPassword はOTPを発行してメールで届けます。
	ForgotPassword(ctx context.Context, email string) error
	// VerifyOTP はコードの有効性を副作用なしで確認します。
	VerifyOTP(ctx context.Context, email, otp string) error
	// ResetPassword は有効なOTPと引き換えにパスワードを再設定します。
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error
	// ResendOTP は新しいコードで上書き再発行します。
	ResendOTP(ctx context.Context, email string) error
}

// PasswordHandler はパスワードリセットのHTTPリクエストを処理します。
type PasswordHandler struct {
	passwords PasswordUsecase
}

// NewPasswordHandler はPasswordHandlerの新しいインスタンスを生成します。
func NewPasswordHandler(passwords PasswordUsecase) *PasswordHandler {
	return &PasswordHandler{passwords: passwords}
}

// fail はドメインエラーをHTTPステータスに写像します。
// - UserNotFound: 404
// - バリデーション/OTPエラー: 400
// - メール送信失敗: 500（ストレージ障害と区別される）
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authdomain.ErrUserNotFound):
		api.Fail(c, http.StatusNotFound, "User not found with this email", nil)
	case errors.Is(err, domain.ErrInvalidOTP):
		api.Fail(c, http.StatusBadRequest, "Invalid OTP", nil)
	case errors.Is(err, domain.ErrOTPExpired):
		api.Fail(c, http.StatusBadRequest, "OTP has expired", nil)
	case errors.Is(err, domain.ErrPasswordMismatch):
		api.Fail(c, http.StatusBadRequest, "New password and confirm password do not match", nil)
	case errors.Is(err, domain.ErrWeakPassword):
		api.Fail(c, http.StatusBadRequest, "Password must be at least 6 characters long", nil)
	case errors.Is(err, domain.ErrEmailDelivery):
		api.Fail(c, http.StatusInternalServerError, "Failed to send OTP email. Please try again later.", nil)
	default:
		api.Fail(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// ForgotPassword はOTP発行エンドポイントを処理します。
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Please provide email", err)
		return
	}
	if err := h.passwords.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		slog.Warn("forgot password failed", "email", req.Email, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "OTP sent to your email address", nil)
}

// VerifyOTP はOTP確認エンドポイントを処理します。コードは消費されません。
func (h *PasswordHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Please provide email and OTP", err)
		return
	}
	if err := h.passwords.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "OTP verified successfully", nil)
}

// ResetPassword はパスワード再設定エンドポイントを処理します。
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Please provide email, OTP, new password, and confirm password", err)
		return
	}
	if err := h.passwords.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword, req.ConfirmPassword); err != nil {
		slog.Warn("password reset failed", "email", req.Email, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Password reset successfully", nil)
}

// ResendOTP はOTP再発行エンドポイントを処理します。
func (h *PasswordHandler) ResendOTP(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Please provide email", err)
		return
	}
	if err := h.passwords.ResendOTP(c.Request.Context(), req.Email); err != nil {
		slog.Warn("resend OTP failed", "email", req.Email, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "OTP resent to your email address", nil)
}
