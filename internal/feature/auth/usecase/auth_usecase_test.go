package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"elitecards_backend/internal/feature/auth/domain"
	"elitecards_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
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
	user.ID = 1
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

// mockJWTGenerator returns a canned token.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "token-123", nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("registers a client with a hashed password", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 7
				created = user
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

		result, err := uc.Signup(context.Background(), "new@example.com", "secret123", "client")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "client", created.Role)
		assert.NotEqual(t, "secret123", created.Password, "password must not be stored in plain text")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
		assert.Equal(t, "token-123", result.Token)
		assert.Equal(t, uint(7), result.User.ID)
	})

	t.Run("empty role defaults to client", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}, AdminCredentials{})

		result, err := uc.Signup(context.Background(), "new@example.com", "secret123", "")

		require.NoError(t, err)
		assert.Equal(t, entity.RoleClient, result.User.Role)
	})

	t.Run("student role is accepted", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}, AdminCredentials{})

		result, err := uc.Signup(context.Background(), "new@example.com", "secret123", "student")

		require.NoError(t, err)
		assert.Equal(t, entity.RoleStudent, result.User.Role)
	})

	t.Run("admin cannot be self-assigned", func(t *testing.T) {
		createCalled := false
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				createCalled = true
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

		_, err := uc.Signup(context.Background(), "new@example.com", "secret123", "admin")

		assert.ErrorIs(t, err, domain.ErrInvalidRole)
		assert.False(t, createCalled)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return domain.ErrEmailTaken
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

		_, err := uc.Signup(context.Background(), "dup@example.com", "secret123", "client")

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		user := &entity.User{ID: 3, Email: "user@example.com", Password: mustHash(t, "secret123"), Role: entity.RoleClient}
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

		result, err := uc.Login(context.Background(), "user@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, uint(3), result.User.ID)
		assert.Equal(t, "token-123", result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		user := &entity.User{ID: 3, Email: "user@example.com", Password: mustHash(t, "secret123")}
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

		_, err := uc.Login(context.Background(), "user@example.com", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same generic error", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}, AdminCredentials{})

		_, err := uc.Login(context.Background(), "missing@example.com", "secret123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("admin pair authenticates against config, not the store", func(t *testing.T) {
		admin := AdminCredentials{Email: "admin@example.com", Password: "adminpass"}
		// The stored row carries an unrelated hash; only the configured
		// pair matters for the admin path.
		adminUser := &entity.User{ID: 1, Email: admin.Email, Password: mustHash(t, "somethingelse"), Role: entity.RoleAdmin}
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return adminUser, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, admin)

		result, err := uc.Login(context.Background(), admin.Email, admin.Password)

		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, result.User.Role)
	})

	t.Run("admin email with wrong password falls through to the normal path", func(t *testing.T) {
		admin := AdminCredentials{Email: "admin@example.com", Password: "adminpass"}
		adminUser := &entity.User{ID: 1, Email: admin.Email, Password: mustHash(t, "adminpass"), Role: entity.RoleAdmin}
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return adminUser, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, admin)

		_, err := uc.Login(context.Background(), admin.Email, "wrongpass")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("admin login creates the row when missing", func(t *testing.T) {
		admin := AdminCredentials{Email: "admin@example.com", Password: "adminpass"}
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 42
				created = user
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, admin)

		result, err := uc.Login(context.Background(), admin.Email, admin.Password)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, entity.RoleAdmin, created.Role)
		assert.Equal(t, uint(42), result.User.ID)
	})
}

func TestAuthUsecase_EnsureAdminUser(t *testing.T) {
	admin := AdminCredentials{Email: "admin@example.com", Password: "adminpass"}

	t.Run("unconfigured admin is an error", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}, AdminCredentials{})

		_, err := uc.EnsureAdminUser(context.Background())

		assert.Error(t, err)
	})

	t.Run("existing admin is left untouched", func(t *testing.T) {
		adminUser := &entity.User{ID: 1, Email: admin.Email, Role: entity.RoleAdmin}
		saveCalled := false
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return adminUser, nil
			},
			SaveFunc: func(ctx context.Context, user *entity.User) error {
				saveCalled = true
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, admin)

		got, err := uc.EnsureAdminUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, adminUser, got)
		assert.False(t, saveCalled, "no write should happen for an already-admin row")
	})

	t.Run("existing non-admin row is promoted", func(t *testing.T) {
		clientUser := &entity.User{ID: 1, Email: admin.Email, Role: entity.RoleClient}
		saved := false
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return clientUser, nil
			},
			SaveFunc: func(ctx context.Context, user *entity.User) error {
				saved = true
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockJWTGenerator{}, admin)

		got, err := uc.EnsureAdminUser(context.Background())

		require.NoError(t, err)
		assert.True(t, saved)
		assert.Equal(t, entity.RoleAdmin, got.Role)
	})
}

func TestAuthUsecase_Me(t *testing.T) {
	user := &entity.User{ID: 5, Email: "user@example.com", Role: entity.RoleStudent}
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == 5 {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	uc := NewAuthUsecase(repo, &mockJWTGenerator{}, AdminCredentials{})

	got, err := uc.Me(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = uc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
