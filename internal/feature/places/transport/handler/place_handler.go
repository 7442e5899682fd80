// Package handler はplacesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/api"
	"rental_backend/internal/feature/places/domain/entity"
	"rental_backend/internal/feature/places/transport/http/dto"
	"rental_backend/internal/feature/places/usecase"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/authz"
)

// PlaceUsecase は物件管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PlaceUsecase interface {
	Create(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.Place, error)
	Get(ctx context.Context, id string) (*entity.Place, error)
	List(ctx context.Context) ([]*entity.Place, error)
	Update(ctx context.Context, principal *authz.Principal, id string, in usecase.UpdateInput) (*entity.Place, error)
	Delete(ctx context.Context, principal *authz.Principal, id string) error
}

// PlaceHandler は物件管理のHTTPリクエストを処理します。
type PlaceHandler struct {
	uc PlaceUsecase
}

// NewPlaceHandler はPlaceHandlerの新しいインスタンスを生成します。
func NewPlaceHandler(uc PlaceUsecase) *PlaceHandler {
	return &PlaceHandler{uc: uc}
}

// Create は物件作成エンドポイントを処理します。
// オーナーは認証済みユーザーに固定されます。
func (h *PlaceHandler) Create(c *gin.Context) {
	var req dto.CreatePlaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create place validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	place, err := h.uc.Create(c.Request.Context(), jwtmw.PrincipalFrom(c), usecase.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AmenityIDs:  req.AmenityIDs,
	})
	if err != nil {
		slog.Warn("create place failed", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("place created", "place_id", place.ID, "owner_id", place.OwnerID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewPlaceDetailRes(place))
}

// Get は物件詳細取得エンドポイントを処理します。
// オーナー、アメニティ、レビューを埋め込んで返します。
func (h *PlaceHandler) Get(c *gin.Context) {
	place, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlaceDetailRes(place))
}

// List は物件一覧取得エンドポイントを処理します。
func (h *PlaceHandler) List(c *gin.Context) {
	places, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]dto.PlaceRes, 0, len(places))
	for _, p := range places {
		out = append(out, dto.NewPlaceRes(p))
	}
	c.JSON(http.StatusOK, out)
}

// Update は物件部分更新エンドポイントを処理します。
// オーナーまたは管理者のみが更新できます。
func (h *PlaceHandler) Update(c *gin.Context) {
	var req dto.UpdatePlaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update place validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	place, err := h.uc.Update(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id"), usecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.AmenityIDs,
	})
	if err != nil {
		slog.Warn("update place failed", "error", err, "place_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPlaceDetailRes(place))
}

// Delete は物件削除エンドポイントを処理します。
// 物件のレビューは同時に削除され、アメニティは残ります。
func (h *PlaceHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id")); err != nil {
		slog.Warn("delete place failed", "error", err, "place_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("place deleted", "place_id", c.Param("id"), "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "place deleted"})
}
