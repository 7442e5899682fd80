// Package dto はplacesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CreatePlaceReq は物件作成のリクエストボディを表します。
// オーナーは認証済みユーザーに固定されるため、リクエストには含まれません。
type CreatePlaceReq struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	AmenityIDs  []string `json:"amenity_ids"`
}

// UpdatePlaceReq は物件部分更新のリクエストボディを表します。
// nilのフィールドは変更されません。amenity_idsが指定された場合、
// アメニティ集合は全置換されます。
type UpdatePlaceReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	OwnerID     *string   `json:"owner_id"`
	AmenityIDs  *[]string `json:"amenity_ids"`
}
