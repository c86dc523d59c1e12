package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "nutrilabel/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health is a simple readiness handler suitable for infrastructure probes.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:   "ok",
		Database: databaseStatus(r.Context()),
		Time:     nowFunc().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	applog.Debug(r.Context(), "health check responded successfully")
}

func databaseStatus(ctx context.Context) string {
	if database == nil {
		return "unconfigured"
	}
	sqlDB, err := database.DB()
	if err != nil {
		return "unavailable"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		applog.Warn(ctx, "database ping failed", "error", err)
		return "unavailable"
	}
	return "ok"
}
