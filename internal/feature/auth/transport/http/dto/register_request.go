// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	openapitypes "github.com/oapi-codegen/runtime/types"
)

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
// メール形式はJSONデコード時にopenapi runtimeの型で検証されます。
type RegisterReq struct {
	FirstName string              `json:"first_name" binding:"required"`
	LastName  string              `json:"last_name" binding:"required"`
	Email     openapitypes.Email  `json:"email" binding:"required"`
	Password  string              `json:"password" binding:"required,min=8"`
}

// RegisterRes は登録成功時のレスポンスを表します。
type RegisterRes struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
