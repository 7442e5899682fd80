// Package adapters はreviewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rental_backend/internal/feature/reviews/domain/entity"
	"rental_backend/internal/feature/reviews/usecase"
	"rental_backend/internal/shared/apperr"
)

// reviewPostgres はReviewRepositoryインターフェースのGORM実装です。
type reviewPostgres struct {
	db *gorm.DB
}

// reviewPostgresがReviewRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ReviewRepository = (*reviewPostgres)(nil)

// NewReviewPostgres は指定されたgorm.DB接続でreviewPostgresの新しいインスタンスを生成します。
func NewReviewPostgres(db *gorm.DB) *reviewPostgres {
	return &reviewPostgres{db: db}
}

// Create はレビューをデータベースに追加します。
func (r *reviewPostgres) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID はIDでレビューを取得します。
// 存在しない場合、apperr.NotFoundを返します。
func (r *reviewPostgres) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return &review, nil
}

// FindAll は全レビューを登録順で取得します。
func (r *reviewPostgres) FindAll(ctx context.Context) ([]*entity.Review, error) {
	var reviews []*entity.Review
	if err := r.db.WithContext(ctx).Order("created_at").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByPlaceID は指定物件のレビューを登録順で取得します。
func (r *reviewPostgres) FindByPlaceID(ctx context.Context, placeID string) ([]*entity.Review, error) {
	var reviews []*entity.Review
	if err := r.db.WithContext(ctx).Where("place_id = ?", placeID).Order("created_at").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update は変更済みレビューを保存します。GORMのフックによりUpdatedAtが更新されます。
func (r *reviewPostgres) Update(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete はレビューを削除します。
// 存在しない場合、apperr.NotFoundを返します。
func (r *reviewPostgres) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("review not found")
	}
	return nil
}
