// Package dto はamenitiesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"rental_backend/internal/feature/amenities/domain/entity"
)

// AmenityReq はアメニティ作成・更新のリクエストボディを表します。
type AmenityReq struct {
	Name string `json:"name" binding:"required"`
}

// AmenityRes はアメニティのレスポンスDTOです。
type AmenityRes struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAmenityRes はエンティティからレスポンスDTOを生成します。
func NewAmenityRes(a *entity.Amenity) AmenityRes {
	return AmenityRes{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
