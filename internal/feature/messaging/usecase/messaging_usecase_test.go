package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"vufs_backend/internal/feature/messaging/domain/entity"
)

// mockConversationRepository はテスト用のConversationRepositoryモック実装です。
type mockConversationRepository struct {
	createCalls int

	CreateFunc         func(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error
	FindByIDFunc       func(ctx context.Context, id string) (*entity.Conversation, error)
	FindByUserFunc     func(ctx context.Context, userID uint) ([]entity.Conversation, error)
	IsParticipantFunc  func(ctx context.Context, conversationID string, userID uint) (bool, error)
	ParticipantIDsFunc func(ctx context.Context, conversationID string) ([]uint, error)
}

func (m *mockConversationRepository) Create(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, conv, participantIDs)
	}
	return nil
}

func (m *mockConversationRepository) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrConversationNotFound
}

func (m *mockConversationRepository) FindByUser(ctx context.Context, userID uint) ([]entity.Conversation, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConversationRepository) IsParticipant(ctx context.Context, conversationID string, userID uint) (bool, error) {
	if m.IsParticipantFunc != nil {
		return m.IsParticipantFunc(ctx, conversationID, userID)
	}
	return false, nil
}

func (m *mockConversationRepository) ParticipantIDs(ctx context.Context, conversationID string) ([]uint, error) {
	if m.ParticipantIDsFunc != nil {
		return m.ParticipantIDsFunc(ctx, conversationID)
	}
	return nil, nil
}

// mockMessageRepository はテスト用のMessageRepositoryモック実装です。
type mockMessageRepository struct {
	createCalls int

	CreateFunc             func(ctx context.Context, msg *entity.Message) error
	FindByConversationFunc func(ctx context.Context, conversationID string, limit, offset int) ([]entity.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) FindByConversation(ctx context.Context, conversationID string, limit, offset int) ([]entity.Message, error) {
	if m.FindByConversationFunc != nil {
		return m.FindByConversationFunc(ctx, conversationID, limit, offset)
	}
	return nil, nil
}

// mockNotifier はテスト用のMessageNotifierモック実装です。
type mockNotifier struct {
	broadcasts []string
	lastMsg    *entity.Message
}

func (m *mockNotifier) Broadcast(conversationID string, msg *entity.Message) {
	m.broadcasts = append(m.broadcasts, conversationID)
	m.lastMsg = msg
}

// existingConversation は全ユーザーを参加者とみなすリポジトリ設定を返します。
func existingConversation(participants ...uint) *mockConversationRepository {
	set := make(map[uint]struct{}, len(participants))
	for _, id := range participants {
		set[id] = struct{}{}
	}
	return &mockConversationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*entity.Conversation, error) {
			return &entity.Conversation{ID: id}, nil
		},
		IsParticipantFunc: func(ctx context.Context, conversationID string, userID uint) (bool, error) {
			_, ok := set[userID]
			return ok, nil
		},
	}
}

func TestMessagingUsecase_CreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("creator and participants are deduplicated", func(t *testing.T) {
		var gotParticipants []uint
		convs := &mockConversationRepository{
			CreateFunc: func(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error {
				gotParticipants = participantIDs
				conv.ID = "c-1"
				return nil
			},
		}
		uc := NewMessagingUsecase(convs, &mockMessageRepository{}, nil)

		conv, err := uc.CreateConversation(ctx, 1, []uint{2, 2, 1, 3}, true, "weekend fits")
		if err != nil {
			t.Fatalf("CreateConversation() error = %v", err)
		}
		if want := []uint{1, 2, 3}; !reflect.DeepEqual(gotParticipants, want) {
			t.Errorf("participants = %v, want %v", gotParticipants, want)
		}
		if conv.ID != "c-1" {
			t.Errorf("ID = %q, want c-1", conv.ID)
		}
	})

	t.Run("rejects conversation with only the creator", func(t *testing.T) {
		uc := NewMessagingUsecase(&mockConversationRepository{}, &mockMessageRepository{}, nil)

		_, err := uc.CreateConversation(ctx, 1, []uint{1, 1}, false, "")
		if !errors.Is(err, ErrNoParticipants) {
			t.Errorf("CreateConversation() error = %v, want ErrNoParticipants", err)
		}
	})

	t.Run("group requires title", func(t *testing.T) {
		uc := NewMessagingUsecase(&mockConversationRepository{}, &mockMessageRepository{}, nil)

		_, err := uc.CreateConversation(ctx, 1, []uint{2, 3}, true, "")
		if !errors.Is(err, ErrGroupTitleRequired) {
			t.Errorf("CreateConversation() error = %v, want ErrGroupTitleRequired", err)
		}
	})

	t.Run("direct conversation drops title", func(t *testing.T) {
		var created *entity.Conversation
		convs := &mockConversationRepository{
			CreateFunc: func(ctx context.Context, conv *entity.Conversation, participantIDs []uint) error {
				created = conv
				return nil
			},
		}
		uc := NewMessagingUsecase(convs, &mockMessageRepository{}, nil)

		if _, err := uc.CreateConversation(ctx, 1, []uint{2}, false, "ignored"); err != nil {
			t.Fatalf("CreateConversation() error = %v", err)
		}
		if created.Title != "" {
			t.Errorf("Title = %q, want empty", created.Title)
		}
		if created.IsGroup {
			t.Error("IsGroup = true, want false")
		}
	})
}

func TestMessagingUsecase_ListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("participant can list with clamped limit", func(t *testing.T) {
		var gotLimit int
		msgs := &mockMessageRepository{
			FindByConversationFunc: func(ctx context.Context, conversationID string, limit, offset int) ([]entity.Message, error) {
				gotLimit = limit
				return []entity.Message{{ID: 1}}, nil
			},
		}
		uc := NewMessagingUsecase(existingConversation(1, 2), msgs, nil)

		got, err := uc.ListMessages(ctx, "c-1", 1, MaxMessageLimit+1, 0)
		if err != nil {
			t.Fatalf("ListMessages() error = %v", err)
		}
		if gotLimit != DefaultMessageLimit {
			t.Errorf("limit = %d, want %d", gotLimit, DefaultMessageLimit)
		}
		if len(got) != 1 {
			t.Errorf("len(messages) = %d, want 1", len(got))
		}
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		uc := NewMessagingUsecase(existingConversation(1, 2), &mockMessageRepository{}, nil)

		_, err := uc.ListMessages(ctx, "c-1", 3, 10, 0)
		if !errors.Is(err, ErrNotParticipant) {
			t.Errorf("ListMessages() error = %v, want ErrNotParticipant", err)
		}
	})

	t.Run("missing conversation", func(t *testing.T) {
		uc := NewMessagingUsecase(&mockConversationRepository{}, &mockMessageRepository{}, nil)

		_, err := uc.ListMessages(ctx, "nope", 1, 10, 0)
		if !errors.Is(err, ErrConversationNotFound) {
			t.Errorf("ListMessages() error = %v, want ErrConversationNotFound", err)
		}
	})
}

func TestMessagingUsecase_PostMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and broadcasts", func(t *testing.T) {
		msgs := &mockMessageRepository{
			CreateFunc: func(ctx context.Context, msg *entity.Message) error {
				msg.ID = 42
				return nil
			},
		}
		notifier := &mockNotifier{}
		uc := NewMessagingUsecase(existingConversation(1, 2), msgs, notifier)

		msg, err := uc.PostMessage(ctx, "c-1", 1, "hello")
		if err != nil {
			t.Fatalf("PostMessage() error = %v", err)
		}
		if msg.ID != 42 {
			t.Errorf("ID = %d, want 42", msg.ID)
		}
		if len(notifier.broadcasts) != 1 || notifier.broadcasts[0] != "c-1" {
			t.Errorf("broadcasts = %v, want [c-1]", notifier.broadcasts)
		}
		if notifier.lastMsg != msg {
			t.Error("broadcast message differs from saved message")
		}
	})

	t.Run("works without notifier", func(t *testing.T) {
		uc := NewMessagingUsecase(existingConversation(1, 2), &mockMessageRepository{}, nil)

		if _, err := uc.PostMessage(ctx, "c-1", 1, "hello"); err != nil {
			t.Fatalf("PostMessage() error = %v", err)
		}
	})

	t.Run("non-participant cannot post", func(t *testing.T) {
		msgs := &mockMessageRepository{}
		notifier := &mockNotifier{}
		uc := NewMessagingUsecase(existingConversation(1, 2), msgs, notifier)

		_, err := uc.PostMessage(ctx, "c-1", 3, "hello")
		if !errors.Is(err, ErrNotParticipant) {
			t.Errorf("PostMessage() error = %v, want ErrNotParticipant", err)
		}
		if msgs.createCalls != 0 {
			t.Errorf("createCalls = %d, want 0", msgs.createCalls)
		}
		if len(notifier.broadcasts) != 0 {
			t.Errorf("broadcasts = %v, want none", notifier.broadcasts)
		}
	})

	t.Run("rejects empty and oversized body", func(t *testing.T) {
		uc := NewMessagingUsecase(existingConversation(1), &mockMessageRepository{}, nil)

		if _, err := uc.PostMessage(ctx, "c-1", 1, ""); err == nil {
			t.Error("PostMessage() error = nil, want validation error")
		}
		if _, err := uc.PostMessage(ctx, "c-1", 1, strings.Repeat("a", MaxMessageBodyLength+1)); err == nil {
			t.Error("PostMessage() error = nil, want validation error")
		}
	})

	t.Run("save failure does not broadcast", func(t *testing.T) {
		msgs := &mockMessageRepository{
			CreateFunc: func(ctx context.Context, msg *entity.Message) error {
				return errors.New("db down")
			},
		}
		notifier := &mockNotifier{}
		uc := NewMessagingUsecase(existingConversation(1, 2), msgs, notifier)

		if _, err := uc.PostMessage(ctx, "c-1", 1, "hello"); err == nil {
			t.Error("PostMessage() error = nil, want error")
		}
		if len(notifier.broadcasts) != 0 {
			t.Errorf("broadcasts = %v, want none", notifier.broadcasts)
		}
	})
}

func TestMessagingUsecase_ParticipantIDs(t *testing.T) {
	ctx := context.Background()

	convs := existingConversation(1, 2)
	convs.ParticipantIDsFunc = func(ctx context.Context, conversationID string) ([]uint, error) {
		return []uint{1, 2}, nil
	}
	uc := NewMessagingUsecase(convs, &mockMessageRepository{}, nil)

	t.Run("participant can list members", func(t *testing.T) {
		got, err := uc.ParticipantIDs(ctx, "c-1", 1)
		if err != nil {
			t.Fatalf("ParticipantIDs() error = %v", err)
		}
		if want := []uint{1, 2}; !reflect.DeepEqual(got, want) {
			t.Errorf("participants = %v, want %v", got, want)
		}
	})

	t.Run("outsider cannot list members", func(t *testing.T) {
		if _, err := uc.ParticipantIDs(ctx, "c-1", 3); !errors.Is(err, ErrNotParticipant) {
			t.Errorf("ParticipantIDs() error = %v, want ErrNotParticipant", err)
		}
	})
}
