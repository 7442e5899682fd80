// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	openapitypes "github.com/oapi-codegen/runtime/types"
)

// CreateUserReq は管理者によるユーザー作成のリクエストボディを表します。
type CreateUserReq struct {
	FirstName string             `json:"first_name" binding:"required"`
	LastName  string             `json:"last_name" binding:"required"`
	Email     openapitypes.Email `json:"email" binding:"required"`
	Password  string             `json:"password" binding:"required,min=8"`
	IsAdmin   bool               `json:"is_admin"`
}

// UpdateUserReq はユーザー部分更新のリクエストボディを表します。
// nilのフィールドは変更されません。
type UpdateUserReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}
