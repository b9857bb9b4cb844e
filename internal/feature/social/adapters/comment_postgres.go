package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/social/domain/entity"
	"vufs_backend/internal/feature/social/usecase"
)

type commentPostgres struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentPostgres)(nil)

// NewCommentRepository は指定されたgorm.DB接続でcommentPostgresの新しいインスタンスを生成します。
func NewCommentRepository(db *gorm.DB) *commentPostgres {
	return &commentPostgres{db: db}
}

// CommentModel はcommentsテーブルのGORMモデルです。
type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Body      string `gorm:"size:500;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

func (m *CommentModel) toEntity() entity.Comment {
	return entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

// Create はコメントを追加し、投稿のcomment_countを加算します。
func (r *commentPostgres) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := CommentModel{
			PostID:   comment.PostID,
			AuthorID: comment.AuthorID,
			Body:     comment.Body,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		comment.ID = m.ID
		comment.CreatedAt = m.CreatedAt
		return tx.Model(&PostModel{}).Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// FindByID はIDでコメントを取得します。
// 存在しない場合、usecase.ErrCommentNotFoundを返します。
func (r *commentPostgres) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var m CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCommentNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// Delete はコメントを削除し、投稿のcomment_countを減算します。
func (r *commentPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m CommentModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrCommentNotFound
			}
			return err
		}
		if err := tx.Delete(&m).Error; err != nil {
			return err
		}
		return tx.Model(&PostModel{}).Where("id = ? AND comment_count > 0", m.PostID).
			Update("comment_count", gorm.Expr("comment_count - 1")).Error
	})
}

// FindByPost は投稿のコメントを新しい順に返します。
func (r *commentPostgres) FindByPost(ctx context.Context, postID uint, limit, offset int) ([]entity.Comment, error) {
	var rows []CommentModel
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Comment, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
