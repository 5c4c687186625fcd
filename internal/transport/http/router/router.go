package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/devevent-service/internal/config"
	"github.com/baechuer/devevent-service/internal/metrics"
	"github.com/baechuer/devevent-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/devevent-service/internal/transport/http/middleware"
)

// New builds the HTTP handler. auth may be nil, which leaves authoring routes open.
func New(
	h *handlers.EventsHandler,
	b *handlers.BookingsHandler,
	z *handlers.HealthHandler,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", h.List)
		r.Get("/events/{slug}", h.Get)
		r.Get("/events/{slug}/similar", h.Similar)
		r.Post("/bookings", b.Create)

		r.Group(func(r chi.Router) {
			if auth != nil {
				r.Use(auth.Require)
			}
			r.Post("/events", h.Create)
			r.Patch("/events/{slug}", h.Update)
		})
	})

	return r
}
