package api

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/medichat-be/internal/db"
)

// ConsultationStore reads the consultation log
type ConsultationStore interface {
	RecentConsultations(ctx context.Context, limit int) ([]db.Consultation, error)
}

// ConsultationHandler handles consultation log endpoints
type ConsultationHandler struct {
	store ConsultationStore
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(store ConsultationStore) *ConsultationHandler {
	return &ConsultationHandler{store: store}
}

// GetRecent returns the newest consultations
// GET /api/consultations/recent?limit=20
func (h *ConsultationHandler) GetRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}

	consultations, err := h.store.RecentConsultations(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Failed to load consultations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve consultations"})
		return
	}

	for i := range consultations {
		if consultations[i].Symptoms == nil {
			consultations[i].Symptoms = []string{}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"consultations": consultations,
		"count":         len(consultations),
	})
}
