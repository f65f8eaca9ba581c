// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"elitecards_backend/internal/feature/auth/domain"
	"elitecards_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Save はユーザーのインプレース変更を永続化します。
	Save(ctx context.Context, user *entity.User) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// AdminCredentials は運用側で設定された管理者ブートストラップ資格情報です。
// 管理者ログインはCredential Storeのハッシュではなくこのペアに対して認証されます。
type AdminCredentials struct {
	Email    string
	Password string
}

// AuthResult はsignup/loginが返す認証結果です。
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	admin        AdminCredentials
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, admin AdminCredentials) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		admin:        admin,
	}
}

// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// roleが指定された場合はclientまたはstudentのみ許可します。省略時はclientになります。
func (u *authUsecase) Signup(ctx context.Context, email, password, role string) (*AuthResult, error) {
	if role == "" {
		role = entity.RoleClient
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Password: string(hashed), Role: role}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
// 設定された管理者資格情報と完全一致する場合は管理者ブートストラップ経路を通り、
// ストアのパスワードハッシュではなく設定値に対して認証します。
// タイミング攻撃を防止するため、通常経路ではユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if u.admin.Email != "" && email == u.admin.Email && password == u.admin.Password {
		return u.adminLogin(ctx)
	}

	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// adminLogin は管理者ユーザーを取得（必要なら昇格）し、トークンを発行します。
// 行が存在しない場合はEnsureAdminUserで再作成します。
func (u *authUsecase) adminLogin(ctx context.Context) (*AuthResult, error) {
	adminUser, err := u.EnsureAdminUser(ctx)
	if err != nil {
		return nil, err
	}
	token, err := u.jwtGenerator.GenerateToken(adminUser.ID, adminUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: adminUser, Token: token}, nil
}

// EnsureAdminUser は設定された管理者メールのユーザー行を冪等に保証します。
// 存在しなければrole=adminで作成し、別ロールで存在すればadminに昇格します。
// 起動時に一度実行され、ログインの管理者経路からも再利用されます。
func (u *authUsecase) EnsureAdminUser(ctx context.Context) (*entity.User, error) {
	if u.admin.Email == "" {
		return nil, errors.New("admin credentials are not configured")
	}

	adminUser, err := u.users.FindByEmail(ctx, u.admin.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(u.admin.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", hashErr)
		}
		adminUser = &entity.User{Email: u.admin.Email, Password: string(hashed), Role: entity.RoleAdmin}
		if createErr := u.users.Create(ctx, adminUser); createErr != nil {
			return nil, createErr
		}
		slog.Info("admin user created", "email", u.admin.Email)
		return adminUser, nil
	case err != nil:
		return nil, err
	}

	if adminUser.Role != entity.RoleAdmin {
		adminUser.Role = entity.RoleAdmin
		if saveErr := u.users.Save(ctx, adminUser); saveErr != nil {
			return nil, saveErr
		}
		slog.Info("existing user promoted to admin", "email", u.admin.Email)
	}
	return adminUser, nil
}

// Me は認証済みユーザーの現在の情報を取得します。
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
