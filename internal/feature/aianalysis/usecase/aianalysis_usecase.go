package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
	"vufs_backend/internal/shared/ratelimiter"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MaxBatchSize はバッチ処理の最大URL数です。
	MaxBatchSize = 20
	// ReviewThreshold は「要レビュー」判定の閾値です。
	// 総合信頼度がこの値未満の場合、NeedsReviewがtrueになります。
	ReviewThreshold = 50
	// textBrandScore はテキスト照合によるブランド検出の固定スコアです。
	// ロゴ検出と違いプロバイダがスコアを返さないため、保守的な値を割り当てます。
	textBrandScore = 60
)

// 属性ごとの重み。総合信頼度は検出された属性の加重平均です。
const (
	weightCategory = 40
	weightBrand    = 30
	weightColor    = 20
	weightMaterial = 10
)

// LabelDetector は画像からラベルを検出するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LabelDetector interface {
	// DetectLabels は画像バイト列からラベルを検出し、検出結果を返します。
	DetectLabels(ctx context.Context, imageData []byte) ([]entity.DetectedLabel, error)
}

// TextDetector は画像からテキストとブランドロゴを検出するインターフェースです。
type TextDetector interface {
	// DetectTextAndLogos は画像バイト列からテキスト行とロゴを検出します。
	DetectTextAndLogos(ctx context.Context, imageData []byte) (texts []string, logos []entity.DetectedLogo, err error)
}

// DomainClassifier はファッションドメイン分類モデルを抽象化します。
type DomainClassifier interface {
	// ClassifyFashion は画像のファッションドメイン判定を返します。
	ClassifyFashion(ctx context.Context, imageData []byte) (*entity.DomainVerdict, error)
}

// BackgroundProcessor は背景除去処理を抽象化します。
type BackgroundProcessor interface {
	// RemoveBackground は背景を除去した画像バイト列とそのContent-Typeを返します。
	RemoveBackground(ctx context.Context, imageData []byte) (processed []byte, contentType string, err error)
}

// ImageUploader は処理済み画像のオブジェクトストレージへのアップロードを抽象化します。
type ImageUploader interface {
	// Upload は画像を保存し、公開URLを返します。
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// ImageFetcher はリモートURLからの画像取得を抽象化します。
type ImageFetcher interface {
	// Fetch はURLから画像バイト列を取得します。
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// aiAnalysisUsecase は画像解析オーケストレーターとバッチプロセッサを実装します。
//
// 4つのサブステップ（背景除去+アップロード、ラベル検出、テキスト/ロゴ検出、
// ドメイン分類）は互いに独立したベストエフォートであり、個々の失敗は
// ログに記録した上で該当フィールドを欠損のまま処理を続行します。
// リトライは行わず、各サブステップにつき1回のみ試行します。
type aiAnalysisUsecase struct {
	labels      LabelDetector
	texts       TextDetector
	classifier  DomainClassifier
	background  BackgroundProcessor
	uploader    ImageUploader
	fetcher     ImageFetcher
	rateLimiter ratelimiter.RateLimiterInterface
	knownBrands []string
}

// NewAIAnalysisUsecase はaiAnalysisUsecaseの新しいインスタンスを生成します。
func NewAIAnalysisUsecase(
	labels LabelDetector,
	texts TextDetector,
	classifier DomainClassifier,
	background BackgroundProcessor,
	uploader ImageUploader,
	fetcher ImageFetcher,
	rateLimiter ratelimiter.RateLimiterInterface,
	knownBrands []string,
) *aiAnalysisUsecase {
	return &aiAnalysisUsecase{
		labels:      labels,
		texts:       texts,
		classifier:  classifier,
		background:  background,
		uploader:    uploader,
		fetcher:     fetcher,
		rateLimiter: rateLimiter,
		knownBrands: knownBrands,
	}
}

// Analyze は画像バイト列からベストエフォートの解析結果を生成します。
// 入力バリデーション以外のエラーでリクエストが失敗することはありません。
func (u *aiAnalysisUsecase) Analyze(ctx context.Context, imageData []byte) (*entity.Analysis, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(imageData))
	}

	analysis := &entity.Analysis{}

	// (a) 背景除去 + 再アップロード
	u.runBackgroundRemoval(ctx, imageData, analysis)

	// (b) ラベル検出
	u.runLabelDetection(ctx, imageData, analysis)

	// (c) テキスト/ロゴ検出によるブランド推定
	u.runBrandDetection(ctx, imageData, analysis)

	// (d) ファッションドメイン分類
	u.runDomainClassification(ctx, imageData, analysis)

	u.finalize(analysis)
	return analysis, nil
}

// AnalyzeURL はリモートURLの画像を取得して解析します。
// 取得自体の失敗は解析不能としてエラーを返します。
func (u *aiAnalysisUsecase) AnalyzeURL(ctx context.Context, url string) (*entity.Analysis, error) {
	imageData, err := u.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	return u.Analyze(ctx, imageData)
}

// ProcessBatch はURLリストに対して解析を実行し、インデックス整合の結果を返します。
// 1つのURLの失敗が他のURLの処理を妨げることはありません。
func (u *aiAnalysisUsecase) ProcessBatch(ctx context.Context, urls []string) (*entity.BatchResult, error) {
	if len(urls) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(urls) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d urls (max %d)", ErrBatchTooLarge, len(urls), MaxBatchSize)
	}

	result := &entity.BatchResult{
		Items: make([]entity.BatchItem, len(urls)),
		Total: len(urls),
	}

	for i, url := range urls {
		// プロバイダのレートリミットを考慮して呼び出し間隔を調整する
		u.rateLimiter.WaitIfNeeded()

		item := entity.BatchItem{Index: i, URL: url}
		analysis, err := u.AnalyzeURL(ctx, url)
		if err != nil {
			// 1件のエラーで処理を止めず、構造化エラーとして記録して続行する
			slog.Error("batch item failed", "index", i, "url", url, "error", err)
			item.Error = err.Error()
			result.Failed++
		} else {
			item.Analysis = analysis
			result.Succeeded++
		}
		result.Items[i] = item
	}

	return result, nil
}

// runBackgroundRemoval は背景除去とアップロードを実行します。
// どちらかが失敗した場合、BackgroundRemovedはfalseのままになります。
func (u *aiAnalysisUsecase) runBackgroundRemoval(ctx context.Context, imageData []byte, a *entity.Analysis) {
	processed, contentType, err := u.background.RemoveBackground(ctx, imageData)
	if err != nil {
		slog.Warn("background removal failed", "error", err)
		return
	}
	url, err := u.uploader.Upload(ctx, processed, contentType)
	if err != nil {
		slog.Warn("processed image upload failed", "error", err)
		return
	}
	a.BackgroundRemoved = true
	a.ProcessedImageURL = url
}

// runLabelDetection はラベル検出とカテゴリ/色/素材の導出を実行します。
func (u *aiAnalysisUsecase) runLabelDetection(ctx context.Context, imageData []byte, a *entity.Analysis) {
	labels, err := u.labels.DetectLabels(ctx, imageData)
	if err != nil {
		slog.Warn("label detection failed", "error", err)
		return
	}
	a.Labels = labels

	a.Category, a.Confidence.Category = deriveCategory(labels)
	a.Color, a.Confidence.Color = deriveColor(labels)
	a.Material, a.Confidence.Material = deriveMaterial(labels)
}

// runBrandDetection はロゴ検出を優先し、次にテキストの既知ブランド照合で
// ブランドを推定します。
func (u *aiAnalysisUsecase) runBrandDetection(ctx context.Context, imageData []byte, a *entity.Analysis) {
	texts, logos, err := u.texts.DetectTextAndLogos(ctx, imageData)
	if err != nil {
		slog.Warn("text detection failed", "error", err)
		return
	}
	a.Texts = texts

	// ロゴのスコアはプロバイダ側で較正されているため優先する
	best := entity.DetectedLogo{}
	for _, l := range logos {
		if l.Score > best.Score {
			best = l
		}
	}
	if best.Name != "" {
		a.Brand = best.Name
		a.Confidence.Brand = best.Score
		return
	}

	if brand := matchBrandInTexts(texts, u.knownBrands); brand != "" {
		a.Brand = brand
		a.Confidence.Brand = textBrandScore
	}
}

// runDomainClassification はファッションドメイン分類を実行します。
// ラベル検出でカテゴリが得られなかった場合、分類モデルの推定で補完します。
func (u *aiAnalysisUsecase) runDomainClassification(ctx context.Context, imageData []byte, a *entity.Analysis) {
	verdict, err := u.classifier.ClassifyFashion(ctx, imageData)
	if err != nil {
		slog.Warn("fashion domain classification failed", "error", err)
		return
	}
	a.Domain = verdict.Domain
	if a.Category == "" && verdict.Category != "" {
		a.Category = verdict.Category
		a.Confidence.Category = verdict.Confidence
	}
}

// finalize は総合信頼度と要レビューフラグを計算します。
// 検出されなかった属性は加重平均に寄与しません。全属性欠損の場合は0です。
func (u *aiAnalysisUsecase) finalize(a *entity.Analysis) {
	sum := 0
	weights := 0
	if a.Category != "" {
		sum += a.Confidence.Category * weightCategory
		weights += weightCategory
	}
	if a.Brand != "" {
		sum += a.Confidence.Brand * weightBrand
		weights += weightBrand
	}
	if a.Color != "" {
		sum += a.Confidence.Color * weightColor
		weights += weightColor
	}
	if a.Material != "" {
		sum += a.Confidence.Material * weightMaterial
		weights += weightMaterial
	}
	if weights > 0 {
		a.Confidence.Overall = sum / weights
	}
	a.NeedsReview = a.Confidence.Overall < ReviewThreshold
}
