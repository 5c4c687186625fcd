package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
	"github.com/baechuer/devevent-service/internal/metrics"
	"github.com/baechuer/devevent-service/internal/transport/http/response"
)

const readyTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler takes the dependencies readiness depends on, keyed by name.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	var firstErr error
	for _, name := range names {
		err := h.deps[name].Ping(ctx)
		metrics.SetDependencyHealth(name, err == nil)
		if err != nil {
			status[name] = "down"
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		status[name] = "up"
	}

	if firstErr != nil {
		response.Err(w, r, &domain.AppError{
			Code:    domain.CodeUnavailable,
			Message: "not ready",
			Meta:    status,
			Err:     firstErr,
		})
		return
	}
	status["status"] = "ready"
	response.Data(w, http.StatusOK, status)
}
