// Package dto はreviewsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"rental_backend/internal/feature/reviews/domain/entity"
)

// CreateReviewReq はレビュー投稿のリクエストボディを表します。
// 著者は認証済みユーザーに固定されるため、リクエストには含まれません。
type CreateReviewReq struct {
	Text    string `json:"text" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	PlaceID string `json:"place_id" binding:"required"`
}

// UpdateReviewReq はレビュー部分更新のリクエストボディを表します。
// 著者と対象物件は作成後に変更できないため、フィールドがありません。
type UpdateReviewReq struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// ReviewRes はレビューのレスポンスDTOです。
type ReviewRes struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewRes はエンティティからレスポンスDTOを生成します。
func NewReviewRes(r *entity.Review) ReviewRes {
	return ReviewRes{
		ID:        r.ID,
		Text:      r.Text,
		Rating:    r.Rating,
		UserID:    r.UserID,
		PlaceID:   r.PlaceID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
