// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rental_backend/internal/feature/auth/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
	userusecase "rental_backend/internal/feature/users/usecase"
	"rental_backend/internal/shared/apperr"
)

const (
	// RefreshTokenTTL はリフレッシュトークンの有効期間です。
	RefreshTokenTTL = 7 * 24 * time.Hour
	// AccessTokenTTL はアクセストークンの有効期間です。
	AccessTokenTTL = 15 * time.Minute
	// MaxSessionsPerUser は1ユーザーが同時に維持できるセッション数の上限です。
	// 超過時は最も古いセッションが破棄されます。
	MaxSessionsPerUser = 5
)

// UserRepository は認証に必要なユーザー操作を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。メール重複時はapperr.Duplicateを返します。
	Create(ctx context.Context, user *userentity.User) error

	// FindByEmail はメールアドレスでユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)

	// FindByID はIDでユーザーを取得します。
	FindByID(ctx context.Context, id string) (*userentity.User, error)
}

// SessionRepository はリフレッシュトークンセッションの永続化層を抽象化します。
type SessionRepository interface {
	// Create は新しいセッションを永続化します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はID（リフレッシュトークン値）でセッションを取得します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke はRevokedAtを設定してセッションを失効させます。
	Revoke(ctx context.Context, id string) error

	// CountByUserID はユーザーのアクティブなセッション数を返します。
	CountByUserID(ctx context.Context, userID string) (int64, error)

	// DeleteOldestByUserID はユーザーの最も古いセッションを削除します。
	DeleteOldestByUserID(ctx context.Context, userID string) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID, email string, isAdmin bool) (string, error)
}

// RegisterInput はセルフ登録の入力です。is_adminは常にfalseで作成されます。
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// TokenPair はログイン・リフレッシュの結果として返されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// Register はセルフ登録で新規ユーザーを作成します。
// 管理者フラグはクライアント入力に関わらず常にfalseになります。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*userentity.User, error) {
	user, err := userentity.NewUser(in.FirstName, in.LastName, in.Email, false)
	if err != nil {
		return nil, err
	}
	if err := userusecase.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	// メールの一意性チェック。アダプタの一意制約が最終防衛線となる。
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Duplicate("email already registered")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	hashed, err := userusecase.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ。
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する。
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す。
	if err != nil || compareErr != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組に交換します。
// 使用済みトークンは失効し、同じトークンを二度使うことはできません（ローテーション）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated("invalid refresh token")
		}
		return nil, err
	}
	if !session.IsValid() {
		return nil, apperr.Unauthenticated("invalid refresh token")
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated("invalid refresh token")
		}
		return nil, err
	}

	// ローテーション: 旧セッションを失効させてから新しい組を発行する。
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Logout は提示されたリフレッシュトークンのセッションを失効させます。
// 不明なトークンはすでにログアウト済みとして成功扱いにします。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if _, err := u.sessions.FindByID(ctx, refreshToken); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	return u.sessions.Revoke(ctx, refreshToken)
}

// issueTokens はアクセストークンを生成し、新しいセッションを保存します。
func (u *authUsecase) issueTokens(ctx context.Context, user *userentity.User, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := u.jwtGenerator.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	// セッション数の上限を超える場合、最も古いものを破棄する。
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= MaxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		ID:        refreshToken,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(AccessTokenTTL.Seconds()),
	}, nil
}

// newRefreshToken は暗号論的乱数から64文字のhex文字列を生成します。
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
