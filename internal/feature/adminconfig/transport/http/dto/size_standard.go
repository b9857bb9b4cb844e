// Package dto はadminconfigフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

// SizeStandardReq はサイズ規格作成・更新リクエストのボディです。
type SizeStandardReq struct {
	Region    string `json:"region" binding:"required,max=8"`
	Category  string `json:"category" binding:"required,max=64"`
	Label     string `json:"label" binding:"required,max=32"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
}

// SizeStandardRes はサイズ規格レスポンスです。
type SizeStandardRes struct {
	ID        uint   `json:"id"`
	Region    string `json:"region"`
	Category  string `json:"category"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}
