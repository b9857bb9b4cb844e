// Package dto はsocialフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// PostReq は投稿作成リクエストのボディです。
type PostReq struct {
	Body     string `json:"body" binding:"required,max=2000"`
	ItemID   uint   `json:"item_id"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url,max=512"`
}

// PostRes は投稿レスポンスです。
type PostRes struct {
	ID           uint      `json:"id"`
	AuthorID     uint      `json:"author_id"`
	Body         string    `json:"body"`
	ItemID       uint      `json:"item_id,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentReq はコメント作成リクエストのボディです。
type CommentReq struct {
	Body string `json:"body" binding:"required,max=500"`
}

// CommentRes はコメントレスポンスです。
type CommentRes struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowListRes はフォロワー・フォロー中一覧レスポンスです。
type FollowListRes struct {
	UserIDs []uint `json:"user_ids"`
}
