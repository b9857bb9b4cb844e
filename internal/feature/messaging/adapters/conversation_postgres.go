// Package adapters はmessagingフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vufs_backend/internal/feature/messaging/domain/entity"
	"vufs_backend/internal/feature/messaging/usecase"
)

type conversationPostgres struct {
	db *gorm.DB
}

var _ usecase.ConversationRepository = (*conversationPostgres)(nil)

// NewConversationRepository は指定されたgorm.DB接続でconversationPostgresの新しいインスタンスを生成します。
func NewConversationRepository(db *gorm.DB) *conversationPostgres {
	return &conversationPostgres{db: db}
}

// ConversationModel はconversationsテーブルのGORMモデルです。主キーはUUID文字列です。
type ConversationModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	IsGroup   bool   `gorm:"not null;default:false"`
	Title     string `gorm:"size:255"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}

// ParticipantModel はconversation_participantsテーブルのGORMモデルです。
type ParticipantModel struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID string `gorm:"uniqueIndex:idx_conv_user;size:36;not null"`
	UserID         uint   `gorm:"uniqueIndex:idx_conv_user;index;not null"`
	JoinedAt       time.Time
}

// TableName returns the table name for GORM.
func (ParticipantModel) TableName() string {
	return "conversation_participants"
}

func (m *ConversationModel) toEntity() entity.Conversation {
	return entity.Conversation{
		ID:        m.ID,
		IsGroup:   m.IsGroup,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
	}
}

// Create は会話と参加者レコードを同一トランザクションで作成します。
// UUIDを採番してエンティティに書き戻します。
func (r *conversationPostgres) Create(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error {
	id := uuid.NewString()
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := ConversationModel{
			ID:      id,
			IsGroup: conv.IsGroup,
			Title:   conv.Title,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		participants := make([]ParticipantModel, 0, len(participantIDs))
		for _, uid := range participantIDs {
			participants = append(participants, ParticipantModel{
				ConversationID: id,
				UserID:         uid,
				JoinedAt:       now,
			})
		}
		if err := tx.Create(&participants).Error; err != nil {
			return err
		}
		conv.ID = id
		conv.CreatedAt = m.CreatedAt
		return nil
	})
}

// FindByID はIDで会話を取得します。
// 存在しない場合、usecase.ErrConversationNotFoundを返します。
func (r *conversationPostgres) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var m ConversationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrConversationNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// FindByUser はユーザーが参加している会話を新しい順に返します。
func (r *conversationPostgres) FindByUser(ctx context.Context, userID uint) ([]entity.Conversation, error) {
	var rows []ConversationModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ?", userID).
		Order("conversations.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Conversation, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// IsParticipant はユーザーが会話の参加者かどうかを返します。
func (r *conversationPostgres) IsParticipant(ctx context.Context, conversationID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ParticipantModel{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ParticipantIDs は会話の参加者ID一覧を返します。
func (r *conversationPostgres) ParticipantIDs(ctx context.Context, conversationID string) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&ParticipantModel{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
