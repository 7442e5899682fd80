// Package usecase はamenitiesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

// AmenityRepository はアメニティエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AmenityRepository interface {
	// Create は新しいアメニティを永続化します。
	Create(ctx context.Context, amenity *entity.Amenity) error

	// FindByID はIDでアメニティを取得します。存在しない場合はapperr.NotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Amenity, error)

	// FindAll は全アメニティを登録順で取得します。
	FindAll(ctx context.Context) ([]*entity.Amenity, error)

	// Update は変更済みアメニティを保存し、UpdatedAtを更新します。
	Update(ctx context.Context, amenity *entity.Amenity) error
}

// amenityUsecase はアメニティカタログ管理のビジネスロジックを実装します。
type amenityUsecase struct {
	amenities AmenityRepository
}

// NewAmenityUsecase はamenityUsecaseの新しいインスタンスを生成します。
func NewAmenityUsecase(amenities AmenityRepository) *amenityUsecase {
	return &amenityUsecase{amenities: amenities}
}

// Create は管理者が新しいアメニティをカタログに追加します。
func (u *amenityUsecase) Create(ctx context.Context, principal *authz.Principal, name string) (*entity.Amenity, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if !authz.Allow(principal, authz.ActionCreate, authz.Resource{Kind: authz.ResourceAmenity}) {
		return nil, apperr.Denied("admin privileges required")
	}

	amenity, err := entity.NewAmenity(name)
	if err != nil {
		return nil, err
	}
	if err := u.amenities.Create(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// Get はIDでアメニティを取得します。読み取りは誰でも可能です。
func (u *amenityUsecase) Get(ctx context.Context, id string) (*entity.Amenity, error) {
	return u.amenities.FindByID(ctx, id)
}

// List は全アメニティを取得します。読み取りは誰でも可能です。
func (u *amenityUsecase) List(ctx context.Context) ([]*entity.Amenity, error) {
	return u.amenities.FindAll(ctx)
}

// Update は管理者がアメニティ名を変更します。
// 存在しないIDは権限チェックより先にnot foundを返します。
func (u *amenityUsecase) Update(ctx context.Context, principal *authz.Principal, id, name string) (*entity.Amenity, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	amenity, err := u.amenities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.Allow(principal, authz.ActionUpdate, authz.Resource{Kind: authz.ResourceAmenity}) {
		return nil, apperr.Denied("admin privileges required")
	}

	if err := amenity.Rename(name); err != nil {
		return nil, err
	}
	if err := u.amenities.Update(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}
