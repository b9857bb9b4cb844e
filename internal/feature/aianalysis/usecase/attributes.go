package usecase

import (
	"strings"

	"vufs_backend/internal/feature/aianalysis/domain/entity"
)

// categoryKeywords はラベル名からVUFSカテゴリへのマッピングです。
// 先にマッチしたものが優先されるため、具体的な語を先に並べます。
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"t-shirt", "tops"},
	{"shirt", "tops"},
	{"blouse", "tops"},
	{"sweater", "tops"},
	{"hoodie", "tops"},
	{"jacket", "outerwear"},
	{"coat", "outerwear"},
	{"blazer", "outerwear"},
	{"jeans", "bottoms"},
	{"trousers", "bottoms"},
	{"shorts", "bottoms"},
	{"skirt", "bottoms"},
	{"dress", "dresses"},
	{"sneakers", "shoes"},
	{"boot", "shoes"},
	{"sandal", "shoes"},
	{"footwear", "shoes"},
	{"handbag", "bags"},
	{"backpack", "bags"},
	{"bag", "bags"},
	{"hat", "accessories"},
	{"cap", "accessories"},
	{"scarf", "accessories"},
	{"belt", "accessories"},
	{"watch", "accessories"},
	{"sunglasses", "accessories"},
}

// colorKeywords はラベル名から色名へのマッピングです。
var colorKeywords = []string{
	"black", "white", "grey", "gray", "navy", "blue", "red", "green",
	"yellow", "orange", "purple", "pink", "brown", "beige", "khaki",
}

// materialKeywords はラベル名から素材名へのマッピングです。
var materialKeywords = []string{
	"denim", "leather", "cotton", "wool", "silk", "linen", "suede",
	"cashmere", "polyester", "nylon", "fleece", "corduroy",
}

// deriveCategory はラベル検出結果からカテゴリとそのスコアを導出します。
// マッチしない場合は空文字列と0を返します。
func deriveCategory(labels []entity.DetectedLabel) (string, int) {
	for _, kw := range categoryKeywords {
		for _, l := range labels {
			if strings.Contains(strings.ToLower(l.Name), kw.keyword) {
				return kw.category, l.Score
			}
		}
	}
	return "", 0
}

// deriveColor はラベル検出結果から色とそのスコアを導出します。
func deriveColor(labels []entity.DetectedLabel) (string, int) {
	for _, l := range labels {
		name := strings.ToLower(l.Name)
		for _, color := range colorKeywords {
			if strings.Contains(name, color) {
				if color == "gray" {
					color = "grey"
				}
				return color, l.Score
			}
		}
	}
	return "", 0
}

// deriveMaterial はラベル検出結果から素材とそのスコアを導出します。
func deriveMaterial(labels []entity.DetectedLabel) (string, int) {
	for _, l := range labels {
		name := strings.ToLower(l.Name)
		for _, material := range materialKeywords {
			if strings.Contains(name, material) {
				return material, l.Score
			}
		}
	}
	return "", 0
}

// matchBrandInTexts は検出テキストを既知ブランドリストと照合します。
// 大文字小文字を無視した部分一致で、最初にマッチしたブランドを返します。
func matchBrandInTexts(texts []string, knownBrands []string) string {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, b := range knownBrands {
			if strings.Contains(lower, strings.ToLower(b)) {
				return b
			}
		}
	}
	return ""
}
