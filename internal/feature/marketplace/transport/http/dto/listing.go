// Package dto はmarketplaceフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// ListingReq は出品作成・更新リクエストのボディです。
type ListingReq struct {
	ItemID      uint   `json:"item_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Condition   string `json:"condition" binding:"required,oneof=new like_new good fair"`
}

// SearchQuery は出品検索のクエリパラメータです。
type SearchQuery struct {
	Query     string `form:"q"`
	Category  string `form:"category"`
	Condition string `form:"condition" binding:"omitempty,oneof=new like_new good fair"`
	PriceMin  int64  `form:"price_min" binding:"omitempty,gte=0"`
	PriceMax  int64  `form:"price_max" binding:"omitempty,gte=0"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset    int    `form:"offset" binding:"omitempty,gte=0"`
}

// ListingRes は出品レスポンスです。
type ListingRes struct {
	ID          uint      `json:"id"`
	SellerID    uint      `json:"seller_id"`
	ItemID      uint      `json:"item_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Condition   string    `json:"condition"`
	Status      string    `json:"status"`
	LikeCount   int64     `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
