// Package dto はmessagingフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// ConversationReq は会話作成リクエストのボディです。
type ConversationReq struct {
	ParticipantIDs []uint `json:"participant_ids" binding:"required,min=1"`
	IsGroup        bool   `json:"is_group"`
	Title          string `json:"title" binding:"max=255"`
}

// ConversationRes は会話レスポンスです。
type ConversationRes struct {
	ID        string    `json:"id"`
	IsGroup   bool      `json:"is_group"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageReq はメッセージ投稿リクエストのボディです。
type MessageReq struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// MessageRes はメッセージレスポンスです。
type MessageRes struct {
	ID             uint      `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
