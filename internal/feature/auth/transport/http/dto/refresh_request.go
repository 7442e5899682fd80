package dto

// RefreshReq はトークンリフレッシュおよびログアウトのリクエストを表します。
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
