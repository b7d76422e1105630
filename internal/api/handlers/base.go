// Package handlers implements the HTTP endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cleared-dev/payrecon/internal/api/dto"
)

// Base provides shared response helpers.
type Base struct {
	logger *slog.Logger
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && b.logger != nil {
		b.logger.Warn("encoding response", "error", err)
	}
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}
