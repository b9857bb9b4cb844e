package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vufs_backend/internal/feature/social/usecase"
)

type followPostgres struct {
	db *gorm.DB
}

var _ usecase.FollowRepository = (*followPostgres)(nil)

// NewFollowRepository は指定されたgorm.DB接続でfollowPostgresの新しいインスタンスを生成します。
func NewFollowRepository(db *gorm.DB) *followPostgres {
	return &followPostgres{db: db}
}

// FollowModel はfollowsテーブルのGORMモデルです。
// (follower_id, followee_id) の複合ユニーク制約で重複フォローを防ぎます。
type FollowModel struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"uniqueIndex:idx_follower_followee;not null"`
	FolloweeID uint `gorm:"uniqueIndex:idx_follower_followee;index;not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM.
func (FollowModel) TableName() string {
	return "follows"
}

// Follow はフォロー関係を記録します。既にフォロー済みの場合は何もしません（冪等）。
func (r *followPostgres) Follow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FollowModel{FollowerID: followerID, FolloweeID: followeeID}).Error
}

// Unfollow はフォロー関係を削除します。フォローしていない場合は何もしません（冪等）。
func (r *followPostgres) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&FollowModel{}).Error
}

// FolloweeIDs はユーザーがフォローしている相手のID一覧を返します。
func (r *followPostgres) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerIDs はユーザーをフォローしているユーザーのID一覧を返します。
func (r *followPostgres) FollowerIDs(ctx context.Context, followeeID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("followee_id = ?", followeeID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
