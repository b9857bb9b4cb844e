package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_backend/internal/feature/social/usecase"
)

type postLikePostgres struct {
	db *gorm.DB
}

var _ usecase.PostLikeRepository = (*postLikePostgres)(nil)

// NewPostLikeRepository は指定されたgorm.DB接続でpostLikePostgresの新しいインスタンスを生成します。
func NewPostLikeRepository(db *gorm.DB) *postLikePostgres {
	return &postLikePostgres{db: db}
}

// PostLikeModel はpost_likesテーブルのGORMモデルです。
// (post_id, user_id) の複合ユニーク制約で重複いいねを防ぎます。
type PostLikeModel struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"uniqueIndex:idx_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_post_user;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (PostLikeModel) TableName() string {
	return "post_likes"
}

// Like はいいねを記録し、新規のいいねの場合のみlike_countを加算します。
// 既にいいね済みの場合は何もしません（冪等）。
func (r *postLikePostgres) Like(ctx context.Context, postID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&PostLikeModel{PostID: postID, UserID: userID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&PostModel{}).Where("id = ?", postID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Unlike はいいねを削除し、削除された場合のみlike_countを減算します。
// いいねしていない場合は何もしません（冪等）。
func (r *postLikePostgres) Unlike(ctx context.Context, postID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&PostLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&PostModel{}).Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}
