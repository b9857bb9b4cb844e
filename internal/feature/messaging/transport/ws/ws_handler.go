package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtmw "vufs_backend/internal/platform/jwt"
)

// ConversationMembership はルーム参加判定に必要な参照を定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ConversationMembership interface {
	IsParticipant(ctx context.Context, conversationID string, userID uint) (bool, error)
}

// upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler はWebSocket接続とルーム参加を処理します。
type WSHandler struct {
	hub        *Hub
	membership ConversationMembership
}

// NewWSHandler はWSHandlerの新しいインスタンスを生成します。
func NewWSHandler(hub *Hub, membership ConversationMembership) *WSHandler {
	return &WSHandler{hub: hub, membership: membership}
}

// joinRequest はクライアントからのルーム参加メッセージです。
type joinRequest struct {
	Type           string `json:"type"` // "join"のみ対応
	ConversationID string `json:"conversation_id"`
}

// Serve はHTTP接続をWebSocketにアップグレードします。
// クライアントは {"type":"join","conversation_id":"..."} を送って
// 参加している会話のルームに入ります。
//
// エンドポイント: GET /ws（要認証）
func (h *WSHandler) Serve(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "remote_addr", c.ClientIP())
		return
	}

	cl := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]struct{}),
	}
	h.hub.register(cl)
	defer h.hub.unregister(cl)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read failed", "error", err, "user_id", userID)
			}
			return
		}

		var req joinRequest
		if err := json.Unmarshal(data, &req); err != nil || req.Type != "join" {
			continue
		}

		ok, err := h.membership.IsParticipant(c.Request.Context(), req.ConversationID, userID)
		if err != nil {
			slog.Error("failed to check conversation membership", "error", err, "user_id", userID)
			continue
		}
		if !ok {
			slog.Warn("join rejected: not a participant", "user_id", userID, "conversation_id", req.ConversationID)
			continue
		}
		h.hub.join(cl, req.ConversationID)
	}
}
