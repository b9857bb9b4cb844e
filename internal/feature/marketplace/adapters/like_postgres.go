package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_backend/internal/feature/marketplace/usecase"
)

type likePostgres struct {
	db *gorm.DB
}

var _ usecase.LikeRepository = (*likePostgres)(nil)

// NewLikeRepository は指定されたgorm.DB接続でlikePostgresの新しいインスタンスを生成します。
func NewLikeRepository(db *gorm.DB) *likePostgres {
	return &likePostgres{db: db}
}

// ListingLikeModel はlisting_likesテーブルのGORMモデルです。
// (listing_id, user_id) の複合ユニーク制約で重複いいねを防ぎます。
type ListingLikeModel struct {
	ID        uint `gorm:"primaryKey"`
	ListingID uint `gorm:"uniqueIndex:idx_listing_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_listing_user;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (ListingLikeModel) TableName() string {
	return "listing_likes"
}

// Like はいいねを記録し、新規のいいねの場合のみlike_countを加算します。
// 既にいいね済みの場合は何もしません（冪等）。
func (r *likePostgres) Like(ctx context.Context, listingID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ListingLikeModel{ListingID: listingID, UserID: userID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&ListingModel{}).Where("id = ?", listingID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Unlike はいいねを削除し、削除された場合のみlike_countを減算します。
// いいねしていない場合は何もしません（冪等）。
func (r *likePostgres) Unlike(ctx context.Context, listingID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("listing_id = ? AND user_id = ?", listingID, userID).
			Delete(&ListingLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&ListingModel{}).Where("id = ? AND like_count > 0", listingID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}
