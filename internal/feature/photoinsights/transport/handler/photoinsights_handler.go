// Package handler はphotoinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/api"
	"rental_backend/internal/feature/photoinsights/domain/entity"
	"rental_backend/internal/feature/photoinsights/transport/http/dto"
	"rental_backend/internal/feature/photoinsights/usecase"
	jwtmw "rental_backend/internal/platform/jwt"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

// PhotoInsightsUsecase は物件写真解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PhotoInsightsUsecase interface {
	Analyze(ctx context.Context, principal *authz.Principal, placeID string, imageData []byte) (*entity.PhotoInsights, error)
}

// PhotoInsightsHandler は物件写真解析のHTTPリクエストを処理します。
type PhotoInsightsHandler struct {
	uc PhotoInsightsUsecase
}

// NewPhotoInsightsHandler はPhotoInsightsHandlerの新しいインスタンスを生成します。
func NewPhotoInsightsHandler(uc PhotoInsightsUsecase) *PhotoInsightsHandler {
	return &PhotoInsightsHandler{uc: uc}
}

// Analyze は物件写真をアップロードして解析します。
// オーナーまたは管理者のみ実行できます。
//
// エンドポイント: POST /places/:id/photo-insights
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *PhotoInsightsHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}
	if file.Size > usecase.MaxImageSize {
		slog.Warn("画像サイズが上限を超過", "size", file.Size, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像サイズは10MB以下にしてください"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}

	insights, err := h.uc.Analyze(c.Request.Context(), jwtmw.PrincipalFrom(c), c.Param("id"), imageData)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			slog.Warn("写真解析が拒否されました", "error", err, "place_id", c.Param("id"), "remote_addr", c.ClientIP())
			api.WriteError(c, err)
			return
		}
		// 外部ベンダーAPIの失敗は502として返す
		slog.Error("写真解析に失敗", "error", err, "place_id", c.Param("id"))
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "写真解析に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPhotoInsightsRes(insights))
}
