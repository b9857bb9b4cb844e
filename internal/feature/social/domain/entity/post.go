// Package entity はsocialフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Post はソーシャルフィードの投稿を表します。
type Post struct {
	ID           uint
	AuthorID     uint
	Body         string
	ItemID       uint   // 関連するワードローブアイテムID（0は未設定）
	PhotoURL     string // 投稿写真のURL（空は未設定）
	LikeCount    int64
	CommentCount int64
	CreatedAt    time.Time
}

// Comment は投稿へのコメントを表します。
type Comment struct {
	ID        uint
	PostID    uint
	AuthorID  uint
	Body      string
	CreatedAt time.Time
}

// Follow はフォロー関係を表します。FollowerIDがFolloweeIDをフォローしています。
type Follow struct {
	FollowerID uint
	FolloweeID uint
	CreatedAt  time.Time
}
