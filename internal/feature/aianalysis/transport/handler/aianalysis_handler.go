// Package handler はaianalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
	"vufs_backend/internal/feature/aianalysis/transport/http/dto"
	"vufs_backend/internal/feature/aianalysis/usecase"
)

// AIAnalysisUsecase は画像解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AIAnalysisUsecase interface {
	Analyze(ctx context.Context, imageData []byte) (*entity.Analysis, error)
	AnalyzeURL(ctx context.Context, url string) (*entity.Analysis, error)
	ProcessBatch(ctx context.Context, urls []string) (*entity.BatchResult, error)
}

// AIAnalysisHandler は画像解析のHTTPリクエストを処理します。
type AIAnalysisHandler struct {
	uc AIAnalysisUsecase
}

// NewAIAnalysisHandler はAIAnalysisHandlerの新しいインスタンスを生成します。
func NewAIAnalysisHandler(uc AIAnalysisUsecase) *AIAnalysisHandler {
	return &AIAnalysisHandler{uc: uc}
}

// analysisRes はドメインエンティティをレスポンスDTOに変換します。
func analysisRes(a *entity.Analysis) *dto.AnalysisRes {
	labels := make([]dto.LabelRes, 0, len(a.Labels))
	for _, l := range a.Labels {
		labels = append(labels, dto.LabelRes{Name: l.Name, Score: l.Score})
	}
	return &dto.AnalysisRes{
		Domain:   a.Domain,
		Brand:    a.Brand,
		Category: a.Category,
		Color:    a.Color,
		Material: a.Material,
		Confidence: dto.ConfidenceRes{
			Overall:  a.Confidence.Overall,
			Brand:    a.Confidence.Brand,
			Category: a.Confidence.Category,
			Color:    a.Confidence.Color,
			Material: a.Confidence.Material,
		},
		Labels:            labels,
		Texts:             a.Texts,
		BackgroundRemoved: a.BackgroundRemoved,
		ProcessedImageURL: a.ProcessedImageURL,
		NeedsReview:       a.NeedsReview,
	}
}

// Process は画像をアップロードして解析します。
//
// エンドポイント: POST /ai/process
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *AIAnalysisHandler) Process(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "画像ファイルが必要です"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の読み込みに失敗しました"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の読み込みに失敗しました"})
		return
	}

	analysis, err := h.uc.Analyze(c.Request.Context(), imageData)
	if err != nil {
		// Analyzeのエラーは入力バリデーションのみ（サブステップの失敗は吸収される）
		slog.Warn("画像解析のバリデーションに失敗", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysisRes(analysis))
}

// AnalyzeURL はリモートURLの画像を解析します。
//
// エンドポイント: POST /ai/analyze-url
func (h *AIAnalysisHandler) AnalyzeURL(c *gin.Context) {
	var req dto.AnalyzeURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "画像URLが必要です"})
		return
	}

	analysis, err := h.uc.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyImage) || errors.Is(err, usecase.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// リモート画像の取得失敗は上流エラーとして扱う
		slog.Error("画像URLの解析に失敗", "error", err, "url", req.URL)
		c.JSON(http.StatusBadGateway, gin.H{"error": "画像の取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, analysisRes(analysis))
}

// BatchProcess は複数URLをまとめて解析します。
// 個々のURLの失敗は結果配列内のエラーとして返り、全体は200になります。
//
// エンドポイント: POST /ai/batch-process
func (h *AIAnalysisHandler) BatchProcess(c *gin.Context) {
	var req dto.BatchProcessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URLリストが必要です（最大20件）"})
		return
	}

	result, err := h.uc.ProcessBatch(c.Request.Context(), req.URLs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.BatchItemRes, 0, len(result.Items))
	for _, it := range result.Items {
		res := dto.BatchItemRes{Index: it.Index, URL: it.URL, Error: it.Error}
		if it.Analysis != nil {
			res.Analysis = analysisRes(it.Analysis)
		}
		items = append(items, res)
	}

	c.JSON(http.StatusOK, dto.BatchRes{
		Results:   items,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
	})
}
