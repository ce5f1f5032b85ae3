// Package transport exposes HTTP handlers of the pool monitor.
package transport

import (
	"encoding/json"
	"net/http"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/scheduler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type StatusSource interface {
	Status() scheduler.Status
}

// StatusHandler reports the watching state of the pool.
type StatusHandler struct {
	source StatusSource
	logger *zap.Logger
}

func NewStatusHandler(source StatusSource, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{source: source, logger: logger.Named("status_handler")}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	status := h.source.Status()
	if status.Checkpoint.Blocks == nil {
		status.Checkpoint.Blocks = map[uint64]bool{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.logger.Warn("write status response", zap.Error(err))
	}
}

// NewMux serves /status and /metrics behind permissive CORS.
func NewMux(source StatusSource, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/status", NewStatusHandler(source, logger))
	mux.Handle("/metrics", promhttp.Handler())
	return cors.Default().Handler(mux)
}
