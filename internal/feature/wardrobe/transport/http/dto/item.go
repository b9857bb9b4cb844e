// Package dto はwardrobeフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// ItemReq はアイテム作成・更新のリクエストボディです。
// AI解析のサジェスト結果をそのまま流し込めるフィールド構成にしています。
type ItemReq struct {
	VUFSCode    string `json:"vufs_code" binding:"required"`
	Name        string `json:"name" binding:"required,max=255"`
	Brand       string `json:"brand" binding:"max=128"`
	Category    string `json:"category" binding:"max=64"`
	Subcategory string `json:"subcategory" binding:"max=64"`
	Color       string `json:"color" binding:"max=32"`
	Material    string `json:"material" binding:"max=64"`
	SizeLabel   string `json:"size_label" binding:"max=16"`
	SizeRegion  string `json:"size_region" binding:"max=8"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url"`
	// ProcessedPhotoURL はAI解析が返した背景除去済み画像URLです。
	ProcessedPhotoURL string `json:"processed_photo_url" binding:"omitempty,url"`
	Visibility        string `json:"visibility" binding:"omitempty,oneof=private public"`
}

// ItemRes はアイテムのレスポンスDTOです。
type ItemRes struct {
	ID                uint   `json:"id"`
	VUFSCode          string `json:"vufs_code"`
	Name              string `json:"name"`
	Brand             string `json:"brand,omitempty"`
	Category          string `json:"category,omitempty"`
	Subcategory       string `json:"subcategory,omitempty"`
	Color             string `json:"color,omitempty"`
	Material          string `json:"material,omitempty"`
	SizeLabel         string `json:"size_label,omitempty"`
	SizeRegion        string `json:"size_region,omitempty"`
	PhotoURL          string `json:"photo_url,omitempty"`
	ProcessedPhotoURL string `json:"processed_photo_url,omitempty"`
	Visibility        string `json:"visibility"`
	CreatedAt         string `json:"created_at"`
}

// CategoryItem はVUFSタクソノミーノードのレスポンスDTOです。
type CategoryItem struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	ParentCode string `json:"parent_code,omitempty"`
	Depth      int    `json:"depth"`
	Leaf       bool   `json:"leaf"`
}
