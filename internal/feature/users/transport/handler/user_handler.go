// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/api"
	"rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/feature/users/transport/http/dto"
	"rental_backend/internal/feature/users/usecase"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/authz"
)

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UserUsecase interface {
	Create(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.User, error)
}

// UserHandler はユーザー管理のHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create は管理者によるユーザー作成エンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 管理者以外は403を返却
// - メール重複時は409を返却
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.uc.Create(c.Request.Context(), jwtmw.PrincipalFrom(c), usecase.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     string(req.Email),
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		slog.Warn("create user failed", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("user created", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Get はユーザー単体取得エンドポイントを処理します。
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// List はユーザー一覧取得エンドポイントを処理します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]dto.UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserRes(u))
	}
	c.JSON(http.StatusOK, out)
}

// Update はユーザー部分更新エンドポイントを処理します。
// 本人または管理者のみが更新できます。
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.uc.Update(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id"), usecase.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		slog.Warn("update user failed", "error", err, "user_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
