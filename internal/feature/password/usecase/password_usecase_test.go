package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"elitecards_backend/internal/feature/auth/domain"
	"elitecards_backend/internal/feature/auth/domain/entity"
	pwddomain "elitecards_backend/internal/feature/password/domain"
)

// mockUserRepository is a func-field mock of authusecase.UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
	SaveFunc        func(ctx context.Context, user *entity.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Save(ctx context.Context, user *entity.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

// mockMailer records outgoing mail and can be told to fail.
type mockMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	html    string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return "msg-1", nil
}

var otpPattern = regexp.MustCompile(`^[1-9]\d{5}$`)

func fixedUser() *entity.User {
	return &entity.User{ID: 1, Email: "user@example.com", Password: "hashed", Role: entity.RoleClient}
}

func TestGenerateOTP(t *testing.T) {
	// The code space is [100000, 999999]; a leading zero would mean a
	// five-digit code leaked through.
	for i := 0; i < 200; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, otpPattern, otp)
	}
}

func TestPasswordUsecase_ForgotPassword(t *testing.T) {
	t.Run("issues and mails an OTP", func(t *testing.T) {
		user := fixedUser()
		var saved *entity.User
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
			SaveFunc: func(ctx context.Context, u *entity.User) error {
				saved = u
				return nil
			},
		}
		mailer := &mockMailer{}
		uc := NewPasswordUsecase(repo, mailer)

		err := uc.ForgotPassword(context.Background(), "user@example.com")

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Regexp(t, otpPattern, saved.ResetOTP)
		require.NotNil(t, saved.ResetOTPExpiresAt)
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), *saved.ResetOTPExpiresAt, 5*time.Second)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "user@example.com", mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].html, saved.ResetOTP)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := NewPasswordUsecase(&mockUserRepository{}, &mockMailer{})

		err := uc.ForgotPassword(context.Background(), "missing@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("mail failure keeps the stored OTP", func(t *testing.T) {
		user := fixedUser()
		saveCalls := 0
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
			SaveFunc: func(ctx context.Context, u *entity.User) error {
				saveCalls++
				return nil
			},
		}
		uc := NewPasswordUsecase(repo, &mockMailer{err: errors.New("smtp down")})

		err := uc.ForgotPassword(context.Background(), "user@example.com")

		assert.ErrorIs(t, err, pwddomain.ErrEmailDelivery)
		// The write happened before the dispatch and is not rolled back.
		assert.Equal(t, 1, saveCalls)
		assert.NotEmpty(t, user.ResetOTP)
	})
}

func TestPasswordUsecase_VerifyOTP(t *testing.T) {
	newUsecaseWithUser := func(user *entity.User) *passwordUsecase {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		return NewPasswordUsecase(repo, &mockMailer{})
	}

	t.Run("valid code", func(t *testing.T) {
		user := fixedUser()
		expires := time.Now().Add(2 * time.Minute)
		user.ResetOTP = "123456"
		user.ResetOTPExpiresAt = &expires

		err := newUsecaseWithUser(user).VerifyOTP(context.Background(), user.Email, "123456")

		assert.NoError(t, err)
		// Verification is side-effect-free; the code survives for reset.
		assert.Equal(t, "123456", user.ResetOTP)
	})

	t.Run("no active reset", func(t *testing.T) {
		err := newUsecaseWithUser(fixedUser()).VerifyOTP(context.Background(), "user@example.com", "123456")

		assert.ErrorIs(t, err, pwddomain.ErrInvalidOTP)
	})

	t.Run("wrong code", func(t *testing.T) {
		user := fixedUser()
		expires := time.Now().Add(2 * time.Minute)
		user.ResetOTP = "123456"
		user.ResetOTPExpiresAt = &expires

		err := newUsecaseWithUser(user).VerifyOTP(context.Background(), user.Email, "654321")

		assert.ErrorIs(t, err, pwddomain.ErrInvalidOTP)
	})

	t.Run("expired code", func(t *testing.T) {
		user := fixedUser()
		expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		user.ResetOTP = "123456"
		user.ResetOTPExpiresAt = &expires

		uc := newUsecaseWithUser(user)
		uc.now = func() time.Time { return expires.Add(time.Second) }

		err := uc.VerifyOTP(context.Background(), user.Email, "123456")

		assert.ErrorIs(t, err, pwddomain.ErrOTPExpired)
	})

	t.Run("expiry boundary is strict", func(t *testing.T) {
		user := fixedUser()
		expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		user.ResetOTP = "123456"
		user.ResetOTPExpiresAt = &expires

		uc := newUsecaseWithUser(user)
		// Exactly at the deadline the code is still valid; only now >
		// expiresAt fails.
		uc.now = func() time.Time { return expires }

		err := uc.VerifyOTP(context.Background(), user.Email, "123456")

		assert.NoError(t, err)
	})
}

func TestPasswordUsecase_ResetPassword(t *testing.T) {
	newUsecaseWithUser := func(user *entity.User) (*passwordUsecase, *int) {
		saveCalls := 0
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
			SaveFunc: func(ctx context.Context, u *entity.User) error {
				saveCalls++
				return nil
			},
		}
		return NewPasswordUsecase(repo, &mockMailer{}), &saveCalls
	}

	activeUser := func() *entity.User {
		user := fixedUser()
		expires := time.Now().Add(2 * time.Minute)
		user.ResetOTP = "123456"
		user.ResetOTPExpiresAt = &expires
		return user
	}

	t.Run("successful reset clears the OTP pair", func(t *testing.T) {
		user := activeUser()
		uc, saveCalls := newUsecaseWithUser(user)

		err := uc.ResetPassword(context.Background(), user.Email, "123456", "newsecret", "newsecret")

		require.NoError(t, err)
		assert.Equal(t, 1, *saveCalls)
		assert.Empty(t, user.ResetOTP)
		assert.Nil(t, user.ResetOTPExpiresAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")))
	})

	t.Run("confirmation mismatch wins over OTP validity", func(t *testing.T) {
		// Even with a bogus OTP the mismatch is reported first.
		uc, saveCalls := newUsecaseWithUser(fixedUser())

		err := uc.ResetPassword(context.Background(), "user@example.com", "000000", "newsecret", "different")

		assert.ErrorIs(t, err, pwddomain.ErrPasswordMismatch)
		assert.Equal(t, 0, *saveCalls)
	})

	t.Run("weak password", func(t *testing.T) {
		uc, _ := newUsecaseWithUser(activeUser())

		err := uc.ResetPassword(context.Background(), "user@example.com", "123456", "short", "short")

		assert.ErrorIs(t, err, pwddomain.ErrWeakPassword)
	})

	t.Run("wrong code", func(t *testing.T) {
		user := activeUser()
		uc, saveCalls := newUsecaseWithUser(user)

		err := uc.ResetPassword(context.Background(), user.Email, "654321", "newsecret", "newsecret")

		assert.ErrorIs(t, err, pwddomain.ErrInvalidOTP)
		assert.Equal(t, 0, *saveCalls)
		assert.Equal(t, "hashed", user.Password)
	})

	t.Run("expired code", func(t *testing.T) {
		user := activeUser()
		uc, _ := newUsecaseWithUser(user)
		uc.now = func() time.Time { return user.ResetOTPExpiresAt.Add(time.Minute) }

		err := uc.ResetPassword(context.Background(), user.Email, "123456", "newsecret", "newsecret")

		assert.ErrorIs(t, err, pwddomain.ErrOTPExpired)
	})
}

func TestPasswordUsecase_ResendOTP(t *testing.T) {
	t.Run("overwrites the previous code", func(t *testing.T) {
		user := fixedUser()
		oldExpiry := time.Now().Add(time.Minute)
		user.ResetOTP = "111111"
		user.ResetOTPExpiresAt = &oldExpiry

		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		mailer := &mockMailer{}
		uc := NewPasswordUsecase(repo, mailer)

		err := uc.ResendOTP(context.Background(), user.Email)

		require.NoError(t, err)
		assert.NotEqual(t, "111111", user.ResetOTP)
		assert.True(t, user.ResetOTPExpiresAt.After(oldExpiry))

		// The old code no longer verifies.
		assert.ErrorIs(t, uc.VerifyOTP(context.Background(), user.Email, "111111"), pwddomain.ErrInvalidOTP)
		assert.NoError(t, uc.VerifyOTP(context.Background(), user.Email, user.ResetOTP))

		require.Len(t, mailer.sent, 1)
		assert.Contains(t, mailer.sent[0].subject, "Resend")
	})
}
