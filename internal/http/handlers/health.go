package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/cost-manager/internal/http/respond"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and storage status.
type HealthHandler struct {
	startedAt time.Time
	store     Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status, storage, code := "ok", "ok", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		slog.ErrorContext(r.Context(), "storage ping failed", "error", err)
		status, storage, code = "degraded", "unreachable", http.StatusServiceUnavailable
	}
	respond.JSON(w, code, map[string]string{
		"status":  status,
		"storage": storage,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
