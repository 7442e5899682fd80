// Package adapters はplacesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/places/domain/entity"
	"rental_backend/internal/feature/places/usecase"
	reviewentity "rental_backend/internal/feature/reviews/domain/entity"
	"rental_backend/internal/shared/apperr"
)

// placePostgres はPlaceRepositoryインターフェースのGORM実装です。
type placePostgres struct {
	db *gorm.DB
}

// placePostgresがPlaceRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PlaceRepository = (*placePostgres)(nil)

// NewPlacePostgres は指定されたgorm.DB接続でplacePostgresの新しいインスタンスを生成します。
func NewPlacePostgres(db *gorm.DB) *placePostgres {
	return &placePostgres{db: db}
}

// Create は物件を結合テーブルの行とともに追加します。
// Amenitiesはカタログの既存行を参照するだけなので、行自体は変更しません。
func (r *placePostgres) Create(ctx context.Context, p *entity.Place) error {
	return r.db.WithContext(ctx).Omit("Amenities.*", "Owner").Create(p).Error
}

// FindByID はオーナー・アメニティ・レビューをプリロードした物件を取得します。
// 存在しない場合、apperr.NotFoundを返します。
func (r *placePostgres) FindByID(ctx context.Context, id string) (*entity.Place, error) {
	var p entity.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Amenities").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("place not found")
		}
		return nil, err
	}
	return &p, nil
}

// FindAll は全物件を関連とともに登録順で取得します。
func (r *placePostgres) FindAll(ctx context.Context) ([]*entity.Place, error) {
	var places []*entity.Place
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Amenities").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("created_at").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Update は物件本体のカラムのみ保存します。関連はReplaceAmenitiesが扱います。
// GORMのフックによりUpdatedAtが更新されます。
func (r *placePostgres) Update(ctx context.Context, p *entity.Place) error {
	return r.db.WithContext(ctx).Omit("Amenities", "Reviews", "Owner").Save(p).Error
}

// ReplaceAmenities は物件のアメニティ集合を全置換します。
func (r *placePostgres) ReplaceAmenities(ctx context.Context, p *entity.Place, amenities []amenityentity.Amenity) error {
	refs := make([]*amenityentity.Amenity, len(amenities))
	for i := range amenities {
		refs[i] = &amenities[i]
	}
	return r.db.WithContext(ctx).Model(p).Association("Amenities").Replace(refs)
}

// Delete は物件・所有レビュー・結合テーブルの行を1トランザクションで削除します。
// アメニティ本体は共有カタログなので削除しません。
// 存在しない場合、apperr.NotFoundを返します。
func (r *placePostgres) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entity.Place
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("place not found")
			}
			return err
		}

		// 連鎖削除: レビューは物件に所有される。
		if err := tx.Where("place_id = ?", id).Delete(&reviewentity.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Association("Amenities").Clear(); err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
