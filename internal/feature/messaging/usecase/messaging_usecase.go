package usecase

import (
	"context"
	"fmt"

	"vufs_backend/internal/feature/messaging/domain/entity"
)

const (
	// DefaultMessageLimit はメッセージ一覧のデフォルト返却件数です。
	DefaultMessageLimit = 50
	// MaxMessageLimit はメッセージ一覧の最大返却件数です。
	MaxMessageLimit = 200
	// MaxMessageBodyLength はメッセージ本文の最大文字数です。
	MaxMessageBodyLength = 2000
)

// ConversationRepository は会話の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ConversationRepository interface {
	// Create は会話と参加者レコードをまとめて作成します。
	Create(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error
	FindByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindByUser はユーザーが参加している会話を新しい順に返します。
	FindByUser(ctx context.Context, userID uint) ([]entity.Conversation, error)
	// IsParticipant はユーザーが会話の参加者かどうかを返します。
	IsParticipant(ctx context.Context, conversationID string, userID uint) (bool, error)
	// ParticipantIDs は会話の参加者ID一覧を返します。
	ParticipantIDs(ctx context.Context, conversationID string) ([]uint, error)
}

// MessageRepository はメッセージの永続化層を抽象化します。
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// FindByConversation は会話のメッセージを新しい順に返します。
	FindByConversation(ctx context.Context, conversationID string, limit, offset int) ([]entity.Message, error)
}

// MessageNotifier は投稿されたメッセージを接続中の参加者に配信します。
// WebSocketハブが実装します。配信はベストエフォートです。
type MessageNotifier interface {
	Broadcast(conversationID string, msg *entity.Message)
}

// messagingUsecase はメッセージングのビジネスロジックを提供します。
type messagingUsecase struct {
	conversations ConversationRepository
	messages      MessageRepository
	notifier      MessageNotifier
}

// NewMessagingUsecase はmessagingUsecaseの新しいインスタンスを生成します。
// notifierはnil可（WebSocket配信なしで動作します）。
func NewMessagingUsecase(conversations ConversationRepository, messages MessageRepository, notifier MessageNotifier) *messagingUsecase {
	return &messagingUsecase{conversations: conversations, messages: messages, notifier: notifier}
}

// CreateConversation はダイレクトまたはグループ会話を作成します。
// 作成者は自動的に参加者に含まれます。
func (u *messagingUsecase) CreateConversation(ctx context.Context, creatorID uint, participantIDs []uint, isGroup bool, title string) (*entity.Conversation, error) {
	// 作成者自身と重複を除いた相手参加者のみ数える
	others := make([]uint, 0, len(participantIDs))
	seen := map[uint]struct{}{creatorID: {}}
	for _, id := range participantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		others = append(others, id)
	}
	if len(others) == 0 {
		return nil, ErrNoParticipants
	}
	if isGroup && title == "" {
		return nil, ErrGroupTitleRequired
	}
	if !isGroup {
		title = ""
	}

	conv := &entity.Conversation{
		IsGroup: isGroup,
		Title:   title,
	}
	all := append([]uint{creatorID}, others...)
	if err := u.conversations.Create(ctx, conv, all); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// ListConversations はユーザーが参加している会話一覧を返します。
func (u *messagingUsecase) ListConversations(ctx context.Context, userID uint) ([]entity.Conversation, error) {
	return u.conversations.FindByUser(ctx, userID)
}

// ListMessages は会話のメッセージを新しい順に返します。参加者のみ取得できます。
func (u *messagingUsecase) ListMessages(ctx context.Context, conversationID string, userID uint, limit, offset int) ([]entity.Message, error) {
	if limit <= 0 || limit > MaxMessageLimit {
		limit = DefaultMessageLimit
	}
	if offset < 0 {
		offset = 0
	}
	if err := u.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return u.messages.FindByConversation(ctx, conversationID, limit, offset)
}

// PostMessage は会話にメッセージを投稿し、接続中の参加者に配信します。
func (u *messagingUsecase) PostMessage(ctx context.Context, conversationID string, senderID uint, body string) (*entity.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if len(body) > MaxMessageBodyLength {
		return nil, fmt.Errorf("message body exceeds %d characters", MaxMessageBodyLength)
	}
	if err := u.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := u.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if u.notifier != nil {
		u.notifier.Broadcast(conversationID, msg)
	}
	return msg, nil
}

// ParticipantIDs は会話の参加者ID一覧を返します。参加者のみ取得できます。
func (u *messagingUsecase) ParticipantIDs(ctx context.Context, conversationID string, userID uint) ([]uint, error) {
	if err := u.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return u.conversations.ParticipantIDs(ctx, conversationID)
}

// IsParticipant はユーザーが会話の参加者かどうかを返します。
// WebSocketハブのルーム参加判定に使用します。
func (u *messagingUsecase) IsParticipant(ctx context.Context, conversationID string, userID uint) (bool, error) {
	return u.conversations.IsParticipant(ctx, conversationID, userID)
}

func (u *messagingUsecase) requireParticipant(ctx context.Context, conversationID string, userID uint) error {
	if _, err := u.conversations.FindByID(ctx, conversationID); err != nil {
		return err
	}
	ok, err := u.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}
