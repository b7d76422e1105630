package handlers

import (
	"net/http"
	"time"

	"github.com/cleared-dev/payrecon/internal/api/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	Base
	now func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.WriteJSON(w, http.StatusOK, dto.NewHealthResponse(h.now()))
}
