package dto

import (
	"time"

	"rental_backend/internal/feature/users/domain/entity"
)

// UserRes はユーザーのレスポンスDTOです。パスワードハッシュは含まれません。
type UserRes struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserRes はエンティティからレスポンスDTOを生成します。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
