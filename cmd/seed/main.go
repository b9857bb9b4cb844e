// コマンドseedはVUFSタクソノミーとサイズ規格の初期データを投入します。
// 冪等であり、繰り返し実行できます。
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	adminadapters "vufs_backend/internal/feature/adminconfig/adapters"
	adminentity "vufs_backend/internal/feature/adminconfig/domain/entity"
	wardrobeadapters "vufs_backend/internal/feature/wardrobe/adapters"
	wardrobeentity "vufs_backend/internal/feature/wardrobe/domain/entity"
	infradb "vufs_backend/internal/platform/db"
)

// vufsTaxonomy はVUFS（Virtual Unified Fashion System）のカテゴリ階層です。
// depth 0がトップレベル、depth 1のノードがリーフでアイテムに割り当て可能です。
var vufsTaxonomy = []wardrobeentity.Category{
	{Code: "tops", Label: "トップス", Depth: 0},
	{Code: "tops.tshirt", Label: "Tシャツ", ParentCode: "tops", Depth: 1, Leaf: true},
	{Code: "tops.shirt", Label: "シャツ", ParentCode: "tops", Depth: 1, Leaf: true},
	{Code: "tops.blouse", Label: "ブラウス", ParentCode: "tops", Depth: 1, Leaf: true},
	{Code: "tops.sweater", Label: "ニット・セーター", ParentCode: "tops", Depth: 1, Leaf: true},
	{Code: "tops.hoodie", Label: "パーカー", ParentCode: "tops", Depth: 1, Leaf: true},
	{Code: "tops.polo", Label: "ポロシャツ", ParentCode: "tops", Depth: 1, Leaf: true},

	{Code: "bottoms", Label: "ボトムス", Depth: 0},
	{Code: "bottoms.jeans", Label: "ジーンズ", ParentCode: "bottoms", Depth: 1, Leaf: true},
	{Code: "bottoms.trousers", Label: "スラックス", ParentCode: "bottoms", Depth: 1, Leaf: true},
	{Code: "bottoms.shorts", Label: "ショートパンツ", ParentCode: "bottoms", Depth: 1, Leaf: true},
	{Code: "bottoms.skirt", Label: "スカート", ParentCode: "bottoms", Depth: 1, Leaf: true},
	{Code: "bottoms.leggings", Label: "レギンス", ParentCode: "bottoms", Depth: 1, Leaf: true},

	{Code: "outerwear", Label: "アウター", Depth: 0},
	{Code: "outerwear.jacket", Label: "ジャケット", ParentCode: "outerwear", Depth: 1, Leaf: true},
	{Code: "outerwear.coat", Label: "コート", ParentCode: "outerwear", Depth: 1, Leaf: true},
	{Code: "outerwear.blazer", Label: "ブレザー", ParentCode: "outerwear", Depth: 1, Leaf: true},
	{Code: "outerwear.down", Label: "ダウン", ParentCode: "outerwear", Depth: 1, Leaf: true},

	{Code: "dresses", Label: "ワンピース", Depth: 0},
	{Code: "dresses.casual", Label: "カジュアルワンピース", ParentCode: "dresses", Depth: 1, Leaf: true},
	{Code: "dresses.formal", Label: "フォーマルドレス", ParentCode: "dresses", Depth: 1, Leaf: true},

	{Code: "shoes", Label: "シューズ", Depth: 0},
	{Code: "shoes.sneakers", Label: "スニーカー", ParentCode: "shoes", Depth: 1, Leaf: true},
	{Code: "shoes.boots", Label: "ブーツ", ParentCode: "shoes", Depth: 1, Leaf: true},
	{Code: "shoes.heels", Label: "ヒール", ParentCode: "shoes", Depth: 1, Leaf: true},
	{Code: "shoes.sandals", Label: "サンダル", ParentCode: "shoes", Depth: 1, Leaf: true},
	{Code: "shoes.loafers", Label: "ローファー", ParentCode: "shoes", Depth: 1, Leaf: true},

	{Code: "bags", Label: "バッグ", Depth: 0},
	{Code: "bags.tote", Label: "トートバッグ", ParentCode: "bags", Depth: 1, Leaf: true},
	{Code: "bags.backpack", Label: "リュック", ParentCode: "bags", Depth: 1, Leaf: true},
	{Code: "bags.shoulder", Label: "ショルダーバッグ", ParentCode: "bags", Depth: 1, Leaf: true},

	{Code: "accessories", Label: "アクセサリー", Depth: 0},
	{Code: "accessories.hat", Label: "帽子", ParentCode: "accessories", Depth: 1, Leaf: true},
	{Code: "accessories.scarf", Label: "マフラー・スカーフ", ParentCode: "accessories", Depth: 1, Leaf: true},
	{Code: "accessories.belt", Label: "ベルト", ParentCode: "accessories", Depth: 1, Leaf: true},
	{Code: "accessories.watch", Label: "時計", ParentCode: "accessories", Depth: 1, Leaf: true},
	{Code: "accessories.sunglasses", Label: "サングラス", ParentCode: "accessories", Depth: 1, Leaf: true},
}

// sizeStandards は地域別サイズ規格の初期データです。
var sizeStandards = buildSizeStandards()

func buildSizeStandards() []adminentity.SizeStandard {
	var out []adminentity.SizeStandard

	// 衣類（トップス・ボトムス・アウター・ワンピース）
	apparel := []string{"tops", "bottoms", "outerwear", "dresses"}
	jpLabels := []string{"XS", "S", "M", "L", "XL", "XXL"}
	usLabels := []string{"XS", "S", "M", "L", "XL", "XXL"}
	euLabels := []string{"34", "36", "38", "40", "42", "44"}
	for _, cat := range apparel {
		for i, label := range jpLabels {
			out = append(out, adminentity.SizeStandard{Region: "JP", Category: cat, Label: label, SortOrder: i})
		}
		for i, label := range usLabels {
			out = append(out, adminentity.SizeStandard{Region: "US", Category: cat, Label: label, SortOrder: i})
		}
		for i, label := range euLabels {
			out = append(out, adminentity.SizeStandard{Region: "EU", Category: cat, Label: label, SortOrder: i})
		}
	}

	// シューズ（cm / US / EU）
	jpShoes := []string{"23.0", "23.5", "24.0", "24.5", "25.0", "25.5", "26.0", "26.5", "27.0", "27.5", "28.0"}
	usShoes := []string{"5", "5.5", "6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5", "10"}
	euShoes := []string{"36", "37", "38", "39", "40", "41", "42", "43", "44"}
	for i, label := range jpShoes {
		out = append(out, adminentity.SizeStandard{Region: "JP", Category: "shoes", Label: label, SortOrder: i})
	}
	for i, label := range usShoes {
		out = append(out, adminentity.SizeStandard{Region: "US", Category: "shoes", Label: label, SortOrder: i})
	}
	for i, label := range euShoes {
		out = append(out, adminentity.SizeStandard{Region: "EU", Category: "shoes", Label: label, SortOrder: i})
	}
	return out
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found. Using environment variables.")
	}

	db := infradb.OpenDB()
	categoryRepo := wardrobeadapters.NewCategoryRepository(db)
	sizeRepo := adminadapters.NewSizeStandardRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := categoryRepo.UpsertBatch(ctx, vufsTaxonomy); err != nil {
		log.Fatal("failed to seed VUFS taxonomy:", err)
	}
	log.Printf("seeded %d VUFS categories", len(vufsTaxonomy))

	if err := sizeRepo.UpsertBatch(ctx, sizeStandards); err != nil {
		log.Fatal("failed to seed size standards:", err)
	}
	log.Printf("seeded %d size standards", len(sizeStandards))
}
