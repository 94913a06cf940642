package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/medichat-be/internal/api/middleware"
	"github.com/themobileprof/medichat-be/internal/chat"
)

// MessageRouter routes one message to a response
type MessageRouter interface {
	Handle(ctx context.Context, message string) chat.Response
}

// ChatHandler serves the JSON chat endpoint
type ChatHandler struct {
	router MessageRouter
}

// NewChatHandler creates a new chat handler
func NewChatHandler(router MessageRouter) *ChatHandler {
	return &ChatHandler{router: router}
}

// ChatRequest is the POST /chat body. A missing message is treated as empty.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat routes a message and always answers 200 with a response field
// POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Rejected chat request %s: %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	resp := h.router.Handle(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, resp)
}
