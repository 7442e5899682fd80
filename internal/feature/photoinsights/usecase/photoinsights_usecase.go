// Package usecase はphotoinsightsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/photoinsights/domain/entity"
	placeentity "rental_backend/internal/feature/places/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/authz"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MinSuggestionConfidence はアメニティ候補として扱うラベルの最低信頼度です。
	MinSuggestionConfidence = 0.6
	// draftPromptTemplate は説明文ドラフトのプロンプトテンプレートです。
	draftPromptTemplate = "Write a short, inviting vacation-rental description (2-3 sentences) for a listing titled %q whose photo shows: %s. Do not invent features that are not listed."
)

// LabelDetector は画像からラベルを検出するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LabelDetector interface {
	// DetectLabels は画像バイト列からラベルを検出し、検出結果を返します。
	DetectLabels(ctx context.Context, imageData []byte) ([]entity.DetectedLabel, error)
}

// DescriptionDrafter は説明文ドラフトを生成するインターフェースです。
type DescriptionDrafter interface {
	// Draft はプロンプトから説明文を生成します。
	Draft(ctx context.Context, prompt string) (string, error)
}

// PlaceLookup は対象物件の解決と権限チェックに使用する物件検索です。
type PlaceLookup interface {
	FindByID(ctx context.Context, id string) (*placeentity.Place, error)
}

// AmenityCatalog はラベル照合に使用するアメニティカタログです。
type AmenityCatalog interface {
	FindAll(ctx context.Context) ([]*amenityentity.Amenity, error)
}

// photoInsightsUsecase は物件写真の解析ロジックを提供します。
type photoInsightsUsecase struct {
	detector  LabelDetector
	drafter   DescriptionDrafter
	places    PlaceLookup
	amenities AmenityCatalog
}

// NewPhotoInsightsUsecase はphotoInsightsUsecaseの新しいインスタンスを生成します。
func NewPhotoInsightsUsecase(detector LabelDetector, drafter DescriptionDrafter, places PlaceLookup, amenities AmenityCatalog) *photoInsightsUsecase {
	return &photoInsightsUsecase{detector: detector, drafter: drafter, places: places, amenities: amenities}
}

// Analyze は物件写真を解析し、アメニティ候補と説明文ドラフトを返します。
// 物件のオーナーまたは管理者のみ実行できます。候補は必ずカタログの既存
// エントリを参照します。
func (u *photoInsightsUsecase) Analyze(ctx context.Context, principal *authz.Principal, placeID string, imageData []byte) (*entity.PhotoInsights, error) {
	if principal == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if len(imageData) == 0 {
		return nil, apperr.Validation("image", "image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, apperr.Validation("image", fmt.Sprintf("image size exceeds maximum of %d bytes", MaxImageSize))
	}

	// 対象を先に解決する。存在しないIDは権限に関わらずnot foundを返す。
	place, err := u.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(principal, authz.ActionUpdate, authz.Resource{Kind: authz.ResourcePlace, OwnerID: place.OwnerID}) {
		return nil, apperr.Denied("only the owner or an admin may analyze this place's photos")
	}

	labels, err := u.detector.DetectLabels(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("label detection failed: %w", err)
	}

	suggestions, err := u.matchAmenities(ctx, labels)
	if err != nil {
		return nil, err
	}

	draft, err := u.drafter.Draft(ctx, buildDraftPrompt(place.Title, labels))
	if err != nil {
		return nil, fmt.Errorf("description draft failed: %w", err)
	}

	return &entity.PhotoInsights{
		PlaceID:            place.ID,
		Labels:             labels,
		SuggestedAmenities: suggestions,
		DescriptionDraft:   draft,
	}, nil
}

// matchAmenities は検出ラベルをカタログと照合します。照合は大文字小文字を
// 無視した部分一致で、低信頼度のラベルは候補にしません。
func (u *photoInsightsUsecase) matchAmenities(ctx context.Context, labels []entity.DetectedLabel) ([]entity.AmenitySuggestion, error) {
	catalog, err := u.amenities.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []entity.AmenitySuggestion
	seen := make(map[string]struct{})
	for _, label := range labels {
		if label.Confidence < MinSuggestionConfidence {
			continue
		}
		labelName := strings.ToLower(label.Name)
		for _, amenity := range catalog {
			if _, ok := seen[amenity.ID]; ok {
				continue
			}
			amenityName := strings.ToLower(amenity.Name)
			if strings.Contains(labelName, amenityName) || strings.Contains(amenityName, labelName) {
				seen[amenity.ID] = struct{}{}
				suggestions = append(suggestions, entity.AmenitySuggestion{ID: amenity.ID, Name: amenity.Name})
			}
		}
	}
	return suggestions, nil
}

// buildDraftPrompt はラベル一覧から説明文生成プロンプトを構築します。
func buildDraftPrompt(title string, labels []entity.DetectedLabel) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	if len(names) == 0 {
		names = append(names, "no notable features")
	}
	return fmt.Sprintf(draftPromptTemplate, title, strings.Join(names, ", "))
}
