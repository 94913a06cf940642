package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthInfo describes what the running process loaded
type HealthInfo struct {
	Symptoms     int
	Keywords     int
	ChatProvider string
	BreakerState func() string
}

// Health returns a liveness handler
// GET /health
func Health(info HealthInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":        "healthy",
			"time":          time.Now().Unix(),
			"symptoms":      info.Symptoms,
			"keywords":      info.Keywords,
			"chat_provider": info.ChatProvider,
		}
		if info.BreakerState != nil {
			body["chat_circuit"] = info.BreakerState()
		}
		c.JSON(http.StatusOK, body)
	}
}
