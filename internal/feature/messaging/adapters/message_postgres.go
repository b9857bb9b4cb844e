package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vufs_backend/internal/feature/messaging/domain/entity"
	"vufs_backend/internal/feature/messaging/usecase"
)

type messagePostgres struct {
	db *gorm.DB
}

var _ usecase.MessageRepository = (*messagePostgres)(nil)

// NewMessageRepository は指定されたgorm.DB接続でmessagePostgresの新しいインスタンスを生成します。
func NewMessageRepository(db *gorm.DB) *messagePostgres {
	return &messagePostgres{db: db}
}

// MessageModel はmessagesテーブルのGORMモデルです。
type MessageModel struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID string `gorm:"index;size:36;not null"`
	SenderID       uint   `gorm:"index;not null"`
	Body           string `gorm:"size:2000;not null"`
	CreatedAt      time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) toEntity() entity.Message {
	return entity.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

// Create はメッセージを追加し、採番されたIDをエンティティに書き戻します。
func (r *messagePostgres) Create(ctx context.Context, msg *entity.Message) error {
	m := MessageModel{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	msg.ID = m.ID
	msg.CreatedAt = m.CreatedAt
	return nil
}

// FindByConversation は会話のメッセージを新しい順に返します。
func (r *messagePostgres) FindByConversation(ctx context.Context, conversationID string, limit, offset int) ([]entity.Message, error) {
	var rows []MessageModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
