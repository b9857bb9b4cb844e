// Package vision はGoogle Cloud Vision APIを使用した画像検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
	"vufs_backend/internal/feature/aianalysis/usecase"
)

const (
	// maxLabelResults はラベル検出の最大返却件数です。
	maxLabelResults = 20
	// maxLogoResults はロゴ検出の最大返却件数です。
	maxLogoResults = 5
)

// VisionClient はGoogle Cloud Vision APIを使用して画像検出を行います。
type VisionClient struct {
	client *gvision.ImageAnnotatorClient
}

// VisionClientが各検出インターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.LabelDetector = (*VisionClient)(nil)
	_ usecase.TextDetector  = (*VisionClient)(nil)
)

// NewVisionClient はADCを使用してVisionClientの新しいインスタンスを生成します。
func NewVisionClient(ctx context.Context) (*VisionClient, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionClient{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionClient) Close() error {
	return v.client.Close()
}

// annotate は単一画像に対して指定されたフィーチャーの検出を実行します。
func (v *VisionClient) annotate(ctx context.Context, imageData []byte, features []*visionpb.Feature) (*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: imageData},
				Features: features,
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}
	return resp.Responses[0], nil
}

// score01to100 は0.0〜1.0のスコアを0〜100の整数に変換します。
func score01to100(s float32) int {
	v := int(s*100 + 0.5)
	if v > 100 {
		v = 100
	}
	if v < 0 {
		v = 0
	}
	return v
}

// DetectLabels は画像バイト列からラベルを検出します。
func (v *VisionClient) DetectLabels(ctx context.Context, imageData []byte) ([]entity.DetectedLabel, error) {
	resp, err := v.annotate(ctx, imageData, []*visionpb.Feature{
		{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabelResults},
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	labels := make([]entity.DetectedLabel, 0, len(resp.LabelAnnotations))
	for _, l := range resp.LabelAnnotations {
		labels = append(labels, entity.DetectedLabel{
			Name:  l.Description,
			Score: score01to100(l.Score),
		})
	}
	return labels, nil
}

// DetectTextAndLogos は画像バイト列からテキスト行とブランドロゴを検出します。
// 1リクエストで両フィーチャーをまとめて実行します。
func (v *VisionClient) DetectTextAndLogos(ctx context.Context, imageData []byte) ([]string, []entity.DetectedLogo, error) {
	resp, err := v.annotate(ctx, imageData, []*visionpb.Feature{
		{Type: visionpb.Feature_TEXT_DETECTION},
		{Type: visionpb.Feature_LOGO_DETECTION, MaxResults: maxLogoResults},
	})
	if err != nil {
		return nil, nil, err
	}
	if resp == nil {
		return nil, nil, nil
	}

	// TextAnnotationsの先頭要素は検出されたテキスト全体
	var texts []string
	if len(resp.TextAnnotations) > 0 {
		for _, line := range strings.Split(resp.TextAnnotations[0].Description, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				texts = append(texts, line)
			}
		}
	}

	logos := make([]entity.DetectedLogo, 0, len(resp.LogoAnnotations))
	for _, l := range resp.LogoAnnotations {
		logos = append(logos, entity.DetectedLogo{
			Name:  l.Description,
			Score: score01to100(l.Score),
		})
	}

	return texts, logos, nil
}

// LocalizeSubject は画像内の最もスコアの高い被写体のバウンディングボックスを返します。
// 被写体が検出されない場合は(nil, nil)を返します。
func (v *VisionClient) LocalizeSubject(ctx context.Context, imageData []byte) (*entity.BoundingBox, error) {
	resp, err := v.annotate(ctx, imageData, []*visionpb.Feature{
		{Type: visionpb.Feature_OBJECT_LOCALIZATION},
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.LocalizedObjectAnnotations) == 0 {
		return nil, nil
	}

	best := resp.LocalizedObjectAnnotations[0]
	for _, o := range resp.LocalizedObjectAnnotations[1:] {
		if o.Score > best.Score {
			best = o
		}
	}

	vs := best.BoundingPoly.GetNormalizedVertices()
	if len(vs) < 3 {
		return nil, nil
	}

	minX, minY := float64(vs[0].X), float64(vs[0].Y)
	maxX, maxY := minX, minY
	for _, p := range vs[1:] {
		x, y := float64(p.X), float64(p.Y)
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}

	return &entity.BoundingBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, nil
}
