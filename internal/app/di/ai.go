// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vufs_backend/internal/feature/aianalysis/adapters/fetch"
	"vufs_backend/internal/feature/aianalysis/adapters/gemini"
	"vufs_backend/internal/feature/aianalysis/adapters/imageproc"
	visionadapter "vufs_backend/internal/feature/aianalysis/adapters/vision"
	aihandler "vufs_backend/internal/feature/aianalysis/transport/handler"
	aiusecase "vufs_backend/internal/feature/aianalysis/usecase"
	infrahttp "vufs_backend/internal/platform/http"
	"vufs_backend/internal/platform/storage"
	"vufs_backend/internal/shared/ratelimiter"
)

const (
	// fetchTimeout はリモート画像取得のHTTPタイムアウトです。
	fetchTimeout = 30 * time.Second
	// analysisRateLimit はバッチ処理の1分あたりの解析数上限です。
	analysisRateLimit = 30
)

// knownBrands はロゴ検出を補完するテキストマッチ用のブランド辞書です。
// Visionのロゴ検出が取りこぼす日本・欧米の主要ファッションブランドを含みます。
var knownBrands = []string{
	"UNIQLO", "GU", "MUJI", "COMME des GARCONS", "ISSEY MIYAKE",
	"Yohji Yamamoto", "sacai", "KENZO", "BEAMS", "UNITED ARROWS",
	"Nike", "Adidas", "Puma", "New Balance", "Converse", "Vans",
	"Levi's", "Carhartt", "Patagonia", "The North Face", "Champion",
	"Zara", "H&M", "Gucci", "Prada", "Louis Vuitton", "Chanel",
	"Hermes", "Burberry", "Ralph Lauren", "Tommy Hilfiger",
	"Calvin Klein", "Lacoste", "Stone Island", "A.P.C.", "Acne Studios",
}

// NewAIAnalysis creates the fully wired image analysis pipeline.
// It returns the handler and a cleanup function that closes the
// underlying Vision and Cloud Storage clients.
func NewAIAnalysis(ctx context.Context) (*aihandler.AIAnalysisHandler, func(), error) {
	vision, err := visionadapter.NewVisionClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	classifier, err := gemini.NewGeminiClassifier(ctx)
	if err != nil {
		if closeErr := vision.Close(); closeErr != nil {
			slog.Warn("failed to close vision client", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to create gemini classifier: %w", err)
	}

	uploader, err := storage.NewGCSUploader(ctx)
	if err != nil {
		if closeErr := vision.Close(); closeErr != nil {
			slog.Warn("failed to close vision client", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to create storage uploader: %w", err)
	}

	background := imageproc.NewBackgroundRemover(vision)
	fetcher := fetch.NewHTTPImageFetcher(infrahttp.NewHTTPClient(fetchTimeout))
	limiter := ratelimiter.NewRateLimiter(analysisRateLimit, time.Minute)

	uc := aiusecase.NewAIAnalysisUsecase(
		vision,
		vision,
		classifier,
		background,
		uploader,
		fetcher,
		limiter,
		knownBrands,
	)

	cleanup := func() {
		if err := vision.Close(); err != nil {
			slog.Warn("failed to close vision client", "error", err)
		}
		if err := uploader.Close(); err != nil {
			slog.Warn("failed to close storage uploader", "error", err)
		}
	}
	return aihandler.NewAIAnalysisHandler(uc), cleanup, nil
}
