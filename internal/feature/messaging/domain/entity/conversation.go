// Package entity はmessagingフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Conversation は会話（ダイレクトまたはグループ）を表します。
// IDはUUID文字列です。
type Conversation struct {
	ID        string
	IsGroup   bool
	Title     string // グループ会話のみ。ダイレクト会話は空。
	CreatedAt time.Time
}

// Participant は会話の参加者を表します。
type Participant struct {
	ConversationID string
	UserID         uint
	JoinedAt       time.Time
}

// Message は会話内のメッセージを表します。
type Message struct {
	ID             uint
	ConversationID string
	SenderID       uint
	Body           string
	CreatedAt      time.Time
}
