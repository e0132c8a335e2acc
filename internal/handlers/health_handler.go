package handlers

import (
	"net/http"

	"signplay/internal/database"
)

// HealthHandler reports server and database status
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.db.Ping() == nil
	status := "connected"
	if !connected {
		status = "disconnected"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "Backend running",
		"database": map[string]interface{}{
			"status":       status,
			"connected":    connected,
			"databaseName": h.db.Dialect.DriverName(),
		},
	})
}
