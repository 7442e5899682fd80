// Package adapters はamenitiesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/amenities/usecase"
	"rental_backend/internal/shared/apperr"
)

// amenityPostgres はAmenityRepositoryインターフェースのGORM実装です。
type amenityPostgres struct {
	db *gorm.DB
}

// amenityPostgresがAmenityRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AmenityRepository = (*amenityPostgres)(nil)

// NewAmenityPostgres は指定されたgorm.DB接続でamenityPostgresの新しいインスタンスを生成します。
func NewAmenityPostgres(db *gorm.DB) *amenityPostgres {
	return &amenityPostgres{db: db}
}

// Create はアメニティをデータベースに追加します。
func (r *amenityPostgres) Create(ctx context.Context, a *entity.Amenity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByID はIDでアメニティを取得します。
// 存在しない場合、apperr.NotFoundを返します。
func (r *amenityPostgres) FindByID(ctx context.Context, id string) (*entity.Amenity, error) {
	var a entity.Amenity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("amenity not found")
		}
		return nil, err
	}
	return &a, nil
}

// FindAll は全アメニティを登録順で取得します。
func (r *amenityPostgres) FindAll(ctx context.Context) ([]*entity.Amenity, error) {
	var amenities []*entity.Amenity
	if err := r.db.WithContext(ctx).Order("created_at").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

// Update は変更済みアメニティを保存します。GORMのフックによりUpdatedAtが更新されます。
func (r *amenityPostgres) Update(ctx context.Context, a *entity.Amenity) error {
	return r.db.WithContext(ctx).Save(a).Error
}
