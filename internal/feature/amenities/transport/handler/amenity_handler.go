// Package handler はamenitiesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/api"
	"rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/amenities/transport/http/dto"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/authz"
)

// AmenityUsecase はアメニティ管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AmenityUsecase interface {
	Create(ctx context.Context, principal *authz.Principal, name string) (*entity.Amenity, error)
	Get(ctx context.Context, id string) (*entity.Amenity, error)
	List(ctx context.Context) ([]*entity.Amenity, error)
	Update(ctx context.Context, principal *authz.Principal, id, name string) (*entity.Amenity, error)
}

// AmenityHandler はアメニティ管理のHTTPリクエストを処理します。
type AmenityHandler struct {
	uc AmenityUsecase
}

// NewAmenityHandler はAmenityHandlerの新しいインスタンスを生成します。
func NewAmenityHandler(uc AmenityUsecase) *AmenityHandler {
	return &AmenityHandler{uc: uc}
}

// Create はアメニティ作成エンドポイントを処理します。管理者専用です。
func (h *AmenityHandler) Create(c *gin.Context) {
	var req dto.AmenityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create amenity validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	amenity, err := h.uc.Create(c.Request.Context(), jwtmw.PrincipalFrom(c), req.Name)
	if err != nil {
		slog.Warn("create amenity failed", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("amenity created", "amenity_id", amenity.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewAmenityRes(amenity))
}

// Get はアメニティ単体取得エンドポイントを処理します。
func (h *AmenityHandler) Get(c *gin.Context) {
	amenity, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAmenityRes(amenity))
}

// List はアメニティ一覧取得エンドポイントを処理します。
func (h *AmenityHandler) List(c *gin.Context) {
	amenities, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]dto.AmenityRes, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, dto.NewAmenityRes(a))
	}
	c.JSON(http.StatusOK, out)
}

// Update はアメニティ名変更エンドポイントを処理します。管理者専用です。
func (h *AmenityHandler) Update(c *gin.Context) {
	var req dto.AmenityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update amenity validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	amenity, err := h.uc.Update(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id"), req.Name)
	if err != nil {
		slog.Warn("update amenity failed", "error", err, "amenity_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAmenityRes(amenity))
}
