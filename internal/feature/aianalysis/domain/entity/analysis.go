// Package entity はaianalysisフィーチャーのドメインモデルを定義します。
package entity

// Domain values returned by the fashion classifier.
const (
	DomainMenswear   = "menswear"
	DomainWomenswear = "womenswear"
	DomainKids       = "kids"
	DomainUnisex     = "unisex"
)

// DetectedLabel は画像から検出されたラベルを表します。
type DetectedLabel struct {
	Name  string // 検出されたラベル名
	Score int    // 信頼度スコア（0 ~ 100）
}

// DetectedLogo は画像から検出されたブランドロゴを表します。
type DetectedLogo struct {
	Name  string // 検出されたブランド名
	Score int    // 信頼度スコア（0 ~ 100）
}

// Confidence は解析結果の属性ごとの信頼度サブレコードです。
// すべて0〜100の整数で、属性が検出されなかった場合は0です。
type Confidence struct {
	Overall  int
	Brand    int
	Category int
	Color    int
	Material int
}

// DomainVerdict はファッションドメイン分類モデルの判定結果です。
type DomainVerdict struct {
	Domain     string // menswear / womenswear / kids / unisex
	Category   string // モデルが推定したカテゴリ
	Confidence int    // 0 ~ 100
}

// BoundingBox は検出された被写体の正規化バウンディングボックスです（0.0 ~ 1.0）。
type BoundingBox struct {
	X float64
	Y float64
	W float64
	H float64
}

// Analysis は1枚の画像に対するベストエフォート解析結果です。
// リクエストごとに生成され、永続化されません。
// フィールドが空（ゼロ値）であることは、対応するサブステップが
// 失敗またはスキップされたことを意味します。
type Analysis struct {
	Domain   string
	Brand    string
	Category string
	Color    string
	Material string

	Confidence Confidence

	Labels []DetectedLabel // 生のラベル検出結果
	Texts  []string        // 検出されたテキスト行

	BackgroundRemoved bool
	ProcessedImageURL string

	// NeedsReview は総合信頼度が閾値未満の場合にtrueになります。
	NeedsReview bool
}

// BatchItem はバッチ処理における1画像分の結果です。
// Errorが空でない場合、Analysisはnilです。
type BatchItem struct {
	Index    int
	URL      string
	Analysis *Analysis
	Error    string
}

// BatchResult はバッチ処理全体の結果と集計です。
type BatchResult struct {
	Items     []BatchItem
	Total     int
	Succeeded int
	Failed    int
}
