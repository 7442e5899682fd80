// Package handler はreviewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/api"
	"rental_backend/internal/feature/reviews/domain/entity"
	"rental_backend/internal/feature/reviews/transport/http/dto"
	"rental_backend/internal/feature/reviews/usecase"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/authz"
)

// ReviewUsecase はレビュー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReviewUsecase interface {
	Create(ctx context.Context, principal *authz.Principal, in usecase.CreateInput) (*entity.Review, error)
	Get(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context) ([]*entity.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error)
	Update(ctx context.Context, principal *authz.Principal, id string, patch entity.Patch) (*entity.Review, error)
	Delete(ctx context.Context, principal *authz.Principal, id string) error
}

// ReviewHandler はレビュー管理のHTTPリクエストを処理します。
type ReviewHandler struct {
	uc ReviewUsecase
}

// NewReviewHandler はReviewHandlerの新しいインスタンスを生成します。
func NewReviewHandler(uc ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create はレビュー投稿エンドポイントを処理します。
// 著者は認証済みユーザーに固定されます。
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create review validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	review, err := h.uc.Create(c.Request.Context(), jwtmw.PrincipalFrom(c), usecase.CreateInput{
		Text:    req.Text,
		Rating:  req.Rating,
		PlaceID: req.PlaceID,
	})
	if err != nil {
		slog.Warn("create review failed", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("review created", "review_id", review.ID, "place_id", review.PlaceID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewReviewRes(review))
}

// Get はレビュー単体取得エンドポイントを処理します。
func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewRes(review))
}

// List はレビュー一覧取得エンドポイントを処理します。
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResList(reviews))
}

// ListByPlace は物件別レビュー一覧エンドポイントを処理します。
// 物件が存在しない場合は404を返します。
func (h *ReviewHandler) ListByPlace(c *gin.Context) {
	reviews, err := h.uc.ListByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResList(reviews))
}

// Update はレビュー部分更新エンドポイントを処理します。
// 著者または管理者のみが更新できます。
func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update review validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	review, err := h.uc.Update(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id"), entity.Patch{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		slog.Warn("update review failed", "error", err, "review_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewRes(review))
}

// Delete はレビュー削除エンドポイントを処理します。
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id")); err != nil {
		slog.Warn("delete review failed", "error", err, "review_id", c.Param("id"), "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("review deleted", "review_id", c.Param("id"), "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "review deleted"})
}

func toReviewResList(reviews []*entity.Review) []dto.ReviewRes {
	out := make([]dto.ReviewRes, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.NewReviewRes(r))
	}
	return out
}
