// Package entity はphotoinsightsフィーチャーのドメインモデルを定義します。
package entity

// DetectedLabel は物件写真から検出されたラベルを表します。
type DetectedLabel struct {
	Name       string  // 検出された物体・特徴の名称
	Confidence float32 // 信頼度スコア（0.0 ~ 1.0）
}

// AmenitySuggestion は写真ラベルに一致したカタログ上のアメニティです。
type AmenitySuggestion struct {
	ID   string // アメニティID（カタログの既存エントリ）
	Name string // アメニティ名
}

// PhotoInsights は物件写真1枚の解析結果を表します。
type PhotoInsights struct {
	PlaceID            string              // 解析対象の物件ID
	Labels             []DetectedLabel     // 検出された全ラベル
	SuggestedAmenities []AmenitySuggestion // 追加候補のアメニティ
	DescriptionDraft   string              // AI生成の説明文ドラフト
}
