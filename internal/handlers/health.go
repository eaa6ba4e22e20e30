package handlers

import (
	"net/http"
	"time"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
	"github.com/NICOL-XPDK/weba-backend/internal/services"
)

// HealthHandler reports liveness and storage state. Always 200.
type HealthHandler struct {
	svc *services.SubmissionService
}

func NewHealthHandler(svc *services.SubmissionService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storage := "not configured"
	if h.svc.StorageConfigured() {
		storage = "connected"
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Storage:   storage,
	})
}
