package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/themobileprof/medichat-be/internal/api/middleware"
	"github.com/themobileprof/medichat-be/internal/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // the HTTP API is open to any origin as well
	},
}

const (
	maxMessageSize = 8 * 1024
	writeWait      = 10 * time.Second
)

// MessageRouter routes one message to a response
type MessageRouter interface {
	Handle(ctx context.Context, message string) chat.Response
}

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	router            MessageRouter
	messagesPerMinute int
}

// NewChatHandler creates a new chat handler. Each connection may send at
// most messagesPerMinute messages per minute.
func NewChatHandler(router MessageRouter, messagesPerMinute int) *ChatHandler {
	if messagesPerMinute <= 0 {
		messagesPerMinute = 30
	}
	return &ChatHandler{
		router:            router,
		messagesPerMinute: messagesPerMinute,
	}
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Message string `json:"message"`
}

// ErrorMessage is sent when a frame is rejected
type ErrorMessage struct {
	Error string `json:"error"`
}

// HandleChat upgrades the request and answers each incoming frame with one
// routed response
// GET /ws/chat
func (h *ChatHandler) HandleChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	limiter := middleware.NewWebSocketLimiter(h.messagesPerMinute)
	ctx := c.Request.Context()

	log.Printf("WebSocket connected: %s", c.ClientIP())

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if !limiter.Allow() {
			if err := h.write(conn, ErrorMessage{Error: middleware.RateLimitMessage}); err != nil {
				break
			}
			continue
		}

		resp := h.router.Handle(ctx, msg.Message)
		if err := h.write(conn, resp); err != nil {
			log.Printf("WebSocket write error: %v", err)
			break
		}
	}

	log.Printf("WebSocket disconnected: %s", c.ClientIP())
}

func (h *ChatHandler) write(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
