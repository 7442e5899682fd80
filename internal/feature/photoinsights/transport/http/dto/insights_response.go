// Package dto はphotoinsightsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"rental_backend/internal/feature/photoinsights/domain/entity"
)

// DetectedLabelRes は検出されたラベルのレスポンスDTOです。
type DetectedLabelRes struct {
	Name       string  `json:"name"`       // 検出された物体・特徴の名称
	Confidence float32 `json:"confidence"` // 信頼度スコア（0.0 ~ 1.0）
}

// AmenitySuggestionRes はアメニティ候補のレスポンスDTOです。
type AmenitySuggestionRes struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PhotoInsightsRes は写真解析結果のレスポンスDTOです。
type PhotoInsightsRes struct {
	PlaceID            string                 `json:"place_id"`
	Labels             []DetectedLabelRes     `json:"labels"`
	SuggestedAmenities []AmenitySuggestionRes `json:"suggested_amenities"`
	DescriptionDraft   string                 `json:"description_draft"`
}

// NewPhotoInsightsRes はエンティティからレスポンスDTOを生成します。
func NewPhotoInsightsRes(in *entity.PhotoInsights) PhotoInsightsRes {
	labels := make([]DetectedLabelRes, 0, len(in.Labels))
	for _, l := range in.Labels {
		labels = append(labels, DetectedLabelRes{Name: l.Name, Confidence: l.Confidence})
	}
	suggestions := make([]AmenitySuggestionRes, 0, len(in.SuggestedAmenities))
	for _, s := range in.SuggestedAmenities {
		suggestions = append(suggestions, AmenitySuggestionRes{ID: s.ID, Name: s.Name})
	}
	return PhotoInsightsRes{
		PlaceID:            in.PlaceID,
		Labels:             labels,
		SuggestedAmenities: suggestions,
		DescriptionDraft:   in.DescriptionDraft,
	}
}
