// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

const (
	// MinPasswordLength はパスワードの最低文字数を定義します。
	MinPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。メール重複時はapperr.Duplicateを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByID はIDでユーザーを取得します。存在しない場合はapperr.NotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail はメールアドレスでユーザーを取得します。メール一意性チェックに使用します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll は全ユーザーを登録順で取得します。
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Update は変更済みユーザーを保存し、UpdatedAtを更新します。
	Update(ctx context.Context, user *entity.User) error
}

// CreateInput は管理者によるユーザー作成の入力です。
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// UpdateInput はユーザー部分更新の入力です。nilのフィールドは変更されません。
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// ValidatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

// HashPassword は平文パスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Create は管理者が新規ユーザーアカウントを作成します。
// メールの一意性を作成時に検証し、パスワードはハッシュ化して保存します。
func (u *userUsecase) Create(ctx context.Context, principal *authz.Principal, in CreateInput) (*entity.User, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if !authz.Allow(principal, authz.ActionCreate, authz.Resource{Kind: authz.ResourceUser}) {
		return nil, apperr.Denied("admin privileges required")
	}

	user, err := entity.NewUser(in.FirstName, in.LastName, in.Email, in.IsAdmin)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	// メールの一意性チェック。アダプタの一意制約が最終防衛線となる。
	if err := u.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get はIDでユーザーを取得します。読み取りは誰でも可能です。
func (u *userUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// List は全ユーザーを取得します。読み取りは誰でも可能です。
func (u *userUsecase) List(ctx context.Context) ([]*entity.User, error) {
	return u.users.FindAll(ctx)
}

// Update はユーザーを部分更新します。
// 本人または管理者のみ実行でき、is_adminの変更は管理者に限られます。
// メール変更時は他ユーザーとの重複を再検証し、パスワード変更時は再ハッシュします。
func (u *userUsecase) Update(ctx context.Context, principal *authz.Principal, id string, in UpdateInput) (*entity.User, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	// 対象を先に解決する。存在しないIDは権限に関わらずnot foundを返す。
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Allow(principal, authz.ActionUpdate, authz.Resource{Kind: authz.ResourceUser, OwnerID: user.ID}) {
		return nil, apperr.Denied("cannot update another user's account")
	}
	if in.IsAdmin != nil && !principal.IsAdmin {
		return nil, apperr.Denied("only admins may change the admin flag")
	}

	// メール変更時は一意性を再検証（自分自身との一致は許可）。
	if in.Email != nil {
		if err := entity.ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
		if err := u.ensureEmailFree(ctx, *in.Email, user.ID); err != nil {
			return nil, err
		}
	}

	if err := user.ApplyPatch(entity.Patch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}); err != nil {
		return nil, err
	}

	if in.Password != nil {
		if err := ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ensureEmailFree はメールアドレスが他のユーザーに使われていないことを検証します。
// selfIDが一致する場合は自分自身なので許可します。
func (u *userUsecase) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperr.Duplicate("email already registered")
	}
	return nil
}
