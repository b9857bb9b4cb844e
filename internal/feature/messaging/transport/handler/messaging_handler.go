// Package handler はmessagingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	jwtmw "vufs_backend/internal/platform/jwt"

	"vufs_backend/internal/feature/messaging/domain/entity"
	"vufs_backend/internal/feature/messaging/transport/http/dto"
	"vufs_backend/internal/feature/messaging/usecase"
)

// MessagingUsecase はメッセージングのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MessagingUsecase interface {
	CreateConversation(ctx context.Context, creatorID uint, participantIDs []uint, isGroup bool, title string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]entity.Conversation, error)
	ListMessages(ctx context.Context, conversationID string, userID uint, limit, offset int) ([]entity.Message, error)
	PostMessage(ctx context.Context, conversationID string, senderID uint, body string) (*entity.Message, error)
}

// MessagingHandler はメッセージングのHTTPリクエストを処理します。
type MessagingHandler struct {
	uc MessagingUsecase
}

// NewMessagingHandler はMessagingHandlerの新しいインスタンスを生成します。
func NewMessagingHandler(uc MessagingUsecase) *MessagingHandler {
	return &MessagingHandler{uc: uc}
}

func conversationRes(e *entity.Conversation) dto.ConversationRes {
	return dto.ConversationRes{
		ID:        e.ID,
		IsGroup:   e.IsGroup,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	}
}

func messageRes(e *entity.Message) dto.MessageRes {
	return dto.MessageRes{
		ID:             e.ID,
		ConversationID: e.ConversationID,
		SenderID:       e.SenderID,
		Body:           e.Body,
		CreatedAt:      e.CreatedAt,
	}
}

// writeMessagingError はユースケースのエラーをHTTPステータスに変換します。
func writeMessagingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
	case errors.Is(err, usecase.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrNoParticipants), errors.Is(err, usecase.ErrGroupTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("messaging operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateConversation は会話作成APIです。
//
// エンドポイント: POST /conversations
func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	var req dto.ConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("conversation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	conv, err := h.uc.CreateConversation(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), req.ParticipantIDs, req.IsGroup, req.Title)
	if err != nil {
		writeMessagingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conversationRes(conv))
}

// ListConversations は参加中の会話一覧APIです。
//
// エンドポイント: GET /conversations
func (h *MessagingHandler) ListConversations(c *gin.Context) {
	conversations, err := h.uc.ListConversations(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		writeMessagingError(c, err)
		return
	}
	out := make([]dto.ConversationRes, 0, len(conversations))
	for i := range conversations {
		out = append(out, conversationRes(&conversations[i]))
	}
	c.JSON(http.StatusOK, out)
}

// ListMessages はメッセージ一覧APIです。新しい順に返します。
//
// エンドポイント例: GET /conversations/:id/messages?limit=50&offset=0
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.uc.ListMessages(c.Request.Context(), c.Param("id"), c.GetUint(jwtmw.ContextUserID), limit, offset)
	if err != nil {
		writeMessagingError(c, err)
		return
	}
	out := make([]dto.MessageRes, 0, len(messages))
	for i := range messages {
		out = append(out, messageRes(&messages[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PostMessage はメッセージ投稿APIです。
// 保存後、接続中の参加者にWebSocketで配信されます。
//
// エンドポイント: POST /conversations/:id/messages
func (h *MessagingHandler) PostMessage(c *gin.Context) {
	var req dto.MessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.uc.PostMessage(c.Request.Context(), c.Param("id"), c.GetUint(jwtmw.ContextUserID), req.Body)
	if err != nil {
		writeMessagingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageRes(msg))
}
