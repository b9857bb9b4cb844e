// Package gemini はGoogle Gemini APIを使用したファッションドメイン分類クライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
	"vufs_backend/internal/feature/aianalysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// classifyPrompt はファッションドメイン分類のプロンプトです。
	// JSONのみを返すように指示し、レスポンスをそのままパースします。
	classifyPrompt = `You are a fashion catalog classifier. Look at the garment in the image and answer with JSON only, no prose, in the form:
{"domain":"menswear|womenswear|kids|unisex","category":"tops|bottoms|outerwear|dresses|shoes|bags|accessories","confidence":0-100}`
)

// classifyResponse はGeminiが返すJSONのスキーマです。
type classifyResponse struct {
	Domain     string `json:"domain"`
	Category   string `json:"category"`
	Confidence int    `json:"confidence"`
}

// GeminiClassifier はGoogle Gemini APIを使用してファッションドメインを判定します。
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// GeminiClassifierがDomainClassifierを実装していることをコンパイル時に検証します。
var _ usecase.DomainClassifier = (*GeminiClassifier)(nil)

// NewGeminiClassifier はADCを使用してGeminiClassifierの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiClassifier(ctx context.Context) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClassifier{client: client, model: DefaultModel}, nil
}

// ClassifyFashion は画像のファッションドメイン判定を生成します。
func (g *GeminiClassifier) ClassifyFashion(ctx context.Context, imageData []byte) (*entity.DomainVerdict, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(classifyPrompt),
		genai.NewPartFromBytes(imageData, "image/jpeg"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	return parseVerdict(resp.Text())
}

// parseVerdict はモデル出力からJSON判定を取り出します。
// コードフェンス付きで返ってくる場合があるため除去してからパースします。
func parseVerdict(text string) (*entity.DomainVerdict, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var out classifyResponse
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	switch out.Domain {
	case entity.DomainMenswear, entity.DomainWomenswear, entity.DomainKids, entity.DomainUnisex:
	default:
		return nil, fmt.Errorf("classifier returned unknown domain %q", out.Domain)
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 100 {
		out.Confidence = 100
	}

	return &entity.DomainVerdict{
		Domain:     out.Domain,
		Category:   out.Category,
		Confidence: out.Confidence,
	}, nil
}
