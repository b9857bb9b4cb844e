// Package ws はメッセージングのWebSocket配信を実装します。
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vufs_backend/internal/feature/messaging/domain/entity"
)

const (
	// sendBufferSize はクライアントごとの送信キューの容量です。
	// キューが溢れたクライアントは切断されます。
	sendBufferSize = 64
	writeTimeout   = 10 * time.Second
)

// wireMessage はWebSocketで配信されるメッセージのJSON表現です。
type wireMessage struct {
	Type           string    `json:"type"`
	ID             uint      `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// client は接続中のWebSocketクライアントを表します。
// 書き込みは専用のwriterゴルーチンのみが行います。
type client struct {
	userID uint
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[string]struct{}
}

// Hub は会話ごとのルームを管理し、メッセージを接続中の参加者に配信します。
// すべての可変状態はmutexで保護されます。
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[*client]struct{}
}

// NewHub はHubの新しいインスタンスを生成します。
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*client]struct{}),
		clients: make(map[*client]struct{}),
	}
}

// register はクライアントをハブに追加し、writerゴルーチンを起動します。
func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()

	slog.Info("websocket client connected", "user_id", c.userID)
}

// unregister はクライアントを全ルームから外し、送信キューを閉じます。
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for room := range c.rooms {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()

	close(c.send)
	slog.Info("websocket client disconnected", "user_id", c.userID)
}

// join はクライアントを会話ルームに参加させます。
// 参加資格の検証は呼び出し側（ハンドラー）の責務です。
func (h *Hub) join(c *client, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = make(map[*client]struct{})
	}
	h.rooms[conversationID][c] = struct{}{}
	c.rooms[conversationID] = struct{}{}
}

// Broadcast は会話ルームの全接続クライアントにメッセージを配信します。
// 送信キューが溢れたクライアントはスキップされます（ベストエフォート）。
func (h *Hub) Broadcast(conversationID string, msg *entity.Message) {
	payload, err := json.Marshal(wireMessage{
		Type:           "message",
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt,
	})
	if err != nil {
		slog.Error("failed to encode websocket message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[conversationID] {
		select {
		case c.send <- payload:
		default:
			slog.Warn("websocket send queue full, dropping message", "user_id", c.userID)
		}
	}
}

// writePump は送信キューのメッセージを接続に書き込みます。
// クライアントごとに1つのwriterゴルーチンのみが動作します。
func (c *client) writePump() {
	defer func() {
		if err := c.conn.Close(); err != nil {
			slog.Debug("websocket close failed", "error", err)
		}
	}()
	for payload := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	// キューが閉じられたら正常クローズを送る
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
