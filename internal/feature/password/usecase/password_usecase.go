// Package usecase はパスワードリセットOTPフローのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	authusecase "elitecards_backend/internal/feature/auth/usecase"
	"elitecards_backend/internal/feature/password/domain"
	platformmail "elitecards_backend/internal/platform/mail"
)

// otpTTL はOTP発行・再発行からの有効期間です。
const otpTTL = 5 * time.Minute

// Mailer はトランザクションメールの送信を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/mail）ではなくコンシューマー（usecase）が定義します。
type Mailer interface {
	// Send はHTMLメールを1通送信し、プロバイダのメッセージIDを返します。
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// passwordUsecase はOTPリセットフローを実装します。
//
// 同一ユーザーに対する同時発行（forgot/resendの並行呼び出し）は
// 古典的なcheck-then-set競合であり、最後の書き込みが勝ちます。
// 低頻度のユーザー起点フローであるため、元実装と同じくロックは行いません。
type passwordUsecase struct {
	users  authusecase.UserRepository
	mailer Mailer

	// now はテストで固定できるよう差し替え可能にしています。
	now func() time.Time
}

// NewPasswordUsecase はpasswordUsecaseの新しいインスタンスを生成します。
func NewPasswordUsecase(users authusecase.UserRepository, mailer Mailer) *passwordUsecase {
	return &passwordUsecase{
		users:  users,
		mailer: mailer,
		now:    time.Now,
	}
}

// generateOTP は[100000, 999999]の一様乱数から6桁コードを生成します。
// コード空間はちょうど900,000通りで、5桁になることはありません。
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

// issueOTP はコードを生成・永続化した上でメールを送信します。
// 永続化成功後の送信失敗はErrEmailDeliveryとして区別して返し、
// 保存済みのOTPはロールバックしません（ユーザーはresendで回復できます）。
func (u *passwordUsecase) issueOTP(ctx context.Context, email, subject string, resend bool) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := u.now().Add(otpTTL)
	user.ResetOTP = otp
	user.ResetOTPExpiresAt = &expiresAt
	if err := u.users.Save(ctx, user); err != nil {
		return err
	}

	if _, err := u.mailer.Send(ctx, user.Email, subject, platformmail.OTPBody(user.Email, otp, resend)); err != nil {
		slog.Error("OTP email dispatch failed", "email", user.Email, "error", err)
		return domain.ErrEmailDelivery
	}
	return nil
}

// ForgotPassword はOTPを発行してメールで届けます。
func (u *passwordUsecase) ForgotPassword(ctx context.Context, email string) error {
	return u.issueOTP(ctx, email, platformmail.OTPSubject, false)
}

// ResendOTP は新しいコードで無条件に上書き再発行します。
// 旧コードは保存値と一致しなくなるため、その時点で無効になります。
func (u *passwordUsecase) ResendOTP(ctx context.Context, email string) error {
	return u.issueOTP(ctx, email, platformmail.OTPResendSubject, true)
}

// VerifyOTP はコードの有効性だけを確認します。副作用はなく、コードを消費しません。
// 照合は正規化なしの文字列完全一致です。
func (u *passwordUsecase) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ResetOTP == "" || user.ResetOTP != otp {
		return domain.ErrInvalidOTP
	}
	// 期限は判定時点の壁時計で厳密比較（now > expiresAt で失効）
	if user.ResetOTPExpiresAt == nil || u.now().After(*user.ResetOTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	return nil
}

// ResetPassword は有効なOTPと引き換えにパスワードを再設定します。
// バリデーション失敗は副作用なしで即時返却し、成功時はハッシュを差し替えて
// OTPフィールドを両方クリアします（NoActiveReset状態へ戻る）。
func (u *passwordUsecase) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ResetOTP == "" || user.ResetOTP != otp {
		return domain.ErrInvalidOTP
	}
	if user.ResetOTPExpiresAt == nil || u.now().After(*user.ResetOTPExpiresAt) {
		return domain.ErrOTPExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	user.ResetOTP = ""
	user.ResetOTPExpiresAt = nil
	return u.users.Save(ctx, user)
}
