// Package entity はwardrobeフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Visibility values for a wardrobe item.
const (
	VisibilityPrivate = "private" // 所有者のみ閲覧可能
	VisibilityPublic  = "public"  // プロフィール・マーケットプレイスに公開可能
)

// Item はVUFS分類されたワードローブアイテムを表します。
type Item struct {
	ID          uint
	OwnerID     uint   // 所有ユーザーID
	VUFSCode    string // VUFS分類コード（タクソノミーのリーフを参照）
	Name        string
	Brand       string
	Category    string // VUFSカテゴリラベル（非正規化、検索用）
	Subcategory string
	Color       string
	Material    string
	SizeLabel   string // サイズ表記（例: "M", "W28"）
	SizeRegion  string // サイズ基準の地域コード（例: "JP", "US"）
	PhotoURL    string
	// ProcessedPhotoURL は背景除去済み画像のURLです（未処理の場合は空）。
	ProcessedPhotoURL string
	Visibility        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
