// Package adapters はsocialフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/social/domain/entity"
	"vufs_backend/internal/feature/social/usecase"
)

type postPostgres struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postPostgres)(nil)

// NewPostRepository は指定されたgorm.DB接続でpostPostgresの新しいインスタンスを生成します。
func NewPostRepository(db *gorm.DB) *postPostgres {
	return &postPostgres{db: db}
}

// PostModel はpostsテーブルのGORMモデルです。
type PostModel struct {
	ID           uint   `gorm:"primaryKey"`
	AuthorID     uint   `gorm:"index;not null"`
	Body         string `gorm:"size:2000;not null"`
	ItemID       uint   `gorm:"index"`
	PhotoURL     string `gorm:"size:512"`
	LikeCount    int64  `gorm:"not null;default:0"`
	CommentCount int64  `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

func postToModel(e *entity.Post) PostModel {
	return PostModel{
		ID:           e.ID,
		AuthorID:     e.AuthorID,
		Body:         e.Body,
		ItemID:       e.ItemID,
		PhotoURL:     e.PhotoURL,
		LikeCount:    e.LikeCount,
		CommentCount: e.CommentCount,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *PostModel) toEntity() entity.Post {
	return entity.Post{
		ID:           m.ID,
		AuthorID:     m.AuthorID,
		Body:         m.Body,
		ItemID:       m.ItemID,
		PhotoURL:     m.PhotoURL,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		CreatedAt:    m.CreatedAt,
	}
}

// Create は投稿をデータベースに追加し、採番されたIDをエンティティに書き戻します。
func (r *postPostgres) Create(ctx context.Context, post *entity.Post) error {
	m := postToModel(post)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	post.ID = m.ID
	post.CreatedAt = m.CreatedAt
	return nil
}

// FindByID はIDで投稿を取得します。
// 存在しない場合、usecase.ErrPostNotFoundを返します。
func (r *postPostgres) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var m PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// Delete は投稿と紐づくコメント・いいねを削除します。
func (r *postPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&PostLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}
		return nil
	})
}

// FindByAuthors は指定した投稿者群の投稿を新しい順に返します。
func (r *postPostgres) FindByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]entity.Post, error) {
	if len(authorIDs) == 0 {
		return []entity.Post{}, nil
	}
	var rows []PostModel
	if err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Post, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
