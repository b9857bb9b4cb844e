// Package entity はmarketplaceフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Status values for a listing.
const (
	StatusActive    = "active"
	StatusSold      = "sold"
	StatusWithdrawn = "withdrawn"
)

// Condition values for a listing.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
)

// Listing はマーケットプレイスの出品を表します。
type Listing struct {
	ID          uint
	SellerID    uint
	ItemID      uint   // 出品元のワードローブアイテムID
	Title       string
	Description string
	Brand       string // アイテムから非正規化（検索用）
	Category    string // アイテムから非正規化（絞り込み用）
	Price       int64  // 最小通貨単位（円、セント）
	Currency    string // ISO 4217（例: "JPY"）
	Condition   string
	Status      string
	LikeCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the listing is open for purchase.
func (l *Listing) IsActive() bool {
	return l.Status == StatusActive
}
