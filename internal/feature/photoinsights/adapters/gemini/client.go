// Package gemini はGoogle Gemini APIを使用した説明文生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"rental_backend/internal/feature/photoinsights/usecase"
	"rental_backend/internal/shared/ratelimiter"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiDrafter はGoogle Gemini APIを使用して物件説明文のドラフトを生成します。
type GeminiDrafter struct {
	client  *genai.Client
	model   string
	limiter ratelimiter.RateLimiterInterface
}

// GeminiDrafterがDescriptionDrafterを実装していることをコンパイル時に検証します。
var _ usecase.DescriptionDrafter = (*GeminiDrafter)(nil)

// NewGeminiDrafter はADCを使用してGeminiDrafterの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiDrafter(ctx context.Context, limiter ratelimiter.RateLimiterInterface) (*GeminiDrafter, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiDrafter{client: client, model: DefaultModel, limiter: limiter}, nil
}

// Draft はプロンプトから説明文ドラフトを生成します。
// 外部APIのクォータを守るため、呼び出し前にレートリミッタで待機します。
func (g *GeminiDrafter) Draft(ctx context.Context, prompt string) (string, error) {
	g.limiter.WaitIfNeeded()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
