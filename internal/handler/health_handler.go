package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Health.HealthCheck(); err != nil {
		h.Log.Error("health check failed", zap.Error(err))
		writeSuccess(w, HealthResponse{Status: "unavailable", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "up"}, http.StatusOK)
}
