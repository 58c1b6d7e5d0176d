package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type HealthHandler struct {
	StartedAt time.Time
	PingDB    func(ctx context.Context) error
}

// GET /health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbState := "connected"
	if h.PingDB == nil || h.PingDB(ctx) != nil {
		dbState = "disconnected"
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       "ok",
		"dbConnection": dbState,
		"uptime":       time.Since(h.StartedAt).Seconds(),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
