// Package imageproc は被写体検出に基づく背景除去処理を提供します。
package imageproc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
	"vufs_backend/internal/feature/aianalysis/usecase"
)

const (
	// cropMargin は被写体ボックスの周囲に残すマージンの比率です。
	cropMargin = 0.05
	// webpQuality は処理済み画像のWebPエンコード品質です。
	webpQuality = 90
	// processedContentType は処理済み画像のContent-Typeです。
	processedContentType = "image/webp"
)

// SubjectLocalizer は画像内の主要被写体のバウンディングボックス検出を抽象化します。
// Goの慣例に従い、インターフェースは利用者（imageproc）側で定義します。
type SubjectLocalizer interface {
	LocalizeSubject(ctx context.Context, imageData []byte) (*entity.BoundingBox, error)
}

// BackgroundRemover は被写体検出とクロップによる背景除去を実装します。
//
// 専用のマッティングモデルではなく、被写体ボックスへのクロップと
// 白背景への再合成で「商品写真らしい」処理済みバリアントを生成します。
type BackgroundRemover struct {
	localizer SubjectLocalizer
}

// BackgroundRemoverがBackgroundProcessorを実装していることをコンパイル時に検証します。
var _ usecase.BackgroundProcessor = (*BackgroundRemover)(nil)

// NewBackgroundRemover はBackgroundRemoverの新しいインスタンスを生成します。
func NewBackgroundRemover(localizer SubjectLocalizer) *BackgroundRemover {
	return &BackgroundRemover{localizer: localizer}
}

// RemoveBackground は被写体を検出してクロップし、白背景のWebP画像として返します。
// 被写体が検出できない場合は元画像全体を白背景に再エンコードします。
func (b *BackgroundRemover) RemoveBackground(ctx context.Context, imageData []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	box, err := b.localizer.LocalizeSubject(ctx, imageData)
	if err != nil {
		return nil, "", fmt.Errorf("subject localization failed: %w", err)
	}

	subject := img
	if box != nil {
		subject = imaging.Crop(img, pixelRect(box, img.Bounds()))
	}

	// 白背景に合成（透過PNG由来のアルファを落とす）
	flat := imaging.New(subject.Bounds().Dx(), subject.Bounds().Dy(), color.White)
	flat = imaging.Overlay(flat, subject, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, flat, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode processed image: %w", err)
	}

	return buf.Bytes(), processedContentType, nil
}

// pixelRect は正規化バウンディングボックスをマージン付きのピクセル矩形に変換します。
func pixelRect(box *entity.BoundingBox, bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	x0 := (box.X - cropMargin) * w
	y0 := (box.Y - cropMargin) * h
	x1 := (box.X + box.W + cropMargin) * w
	y1 := (box.Y + box.H + cropMargin) * h

	rect := image.Rect(int(x0), int(y0), int(x1), int(y1))
	return rect.Intersect(bounds)
}
