// Package dto はaianalysisフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AnalyzeURLReq は/ai/analyze-urlエンドポイントのリクエストボディです。
type AnalyzeURLReq struct {
	URL string `json:"url" binding:"required,url"`
}

// BatchProcessReq は/ai/batch-processエンドポイントのリクエストボディです。
type BatchProcessReq struct {
	URLs []string `json:"urls" binding:"required,min=1,max=20,dive,url"`
}

// ConfidenceRes は属性ごとの信頼度サブレコードです。
type ConfidenceRes struct {
	Overall  int `json:"overall"`
	Brand    int `json:"brand"`
	Category int `json:"category"`
	Color    int `json:"color"`
	Material int `json:"material"`
}

// LabelRes は生のラベル検出結果です。
type LabelRes struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AnalysisRes は1枚の画像の解析結果レスポンスです。
// 欠損フィールドは対応するサブステップの失敗またはスキップを意味します。
type AnalysisRes struct {
	Domain            string        `json:"domain,omitempty"`
	Brand             string        `json:"brand,omitempty"`
	Category          string        `json:"category,omitempty"`
	Color             string        `json:"color,omitempty"`
	Material          string        `json:"material,omitempty"`
	Confidence        ConfidenceRes `json:"confidence"`
	Labels            []LabelRes    `json:"labels,omitempty"`
	Texts             []string      `json:"texts,omitempty"`
	BackgroundRemoved bool          `json:"background_removed"`
	ProcessedImageURL string        `json:"processed_image_url,omitempty"`
	NeedsReview       bool          `json:"needs_review"`
}

// BatchItemRes はバッチ処理における1画像分の結果です。
type BatchItemRes struct {
	Index    int          `json:"index"`
	URL      string       `json:"url"`
	Analysis *AnalysisRes `json:"analysis,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// BatchRes はバッチ処理全体のレスポンスです。
type BatchRes struct {
	Results   []BatchItemRes `json:"results"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}
