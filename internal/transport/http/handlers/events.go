package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/devevent-service/internal/application/booking"
	"github.com/baechuer/devevent-service/internal/application/event"
	"github.com/baechuer/devevent-service/internal/domain"
	"github.com/baechuer/devevent-service/internal/fallback"
	"github.com/baechuer/devevent-service/internal/logger"
	"github.com/baechuer/devevent-service/internal/metrics"
	"github.com/baechuer/devevent-service/internal/transport/http/dto"
	"github.com/baechuer/devevent-service/internal/transport/http/response"
	"github.com/baechuer/devevent-service/internal/transport/http/validate"
)

const defaultMaxUpload = 10 << 20

type EventsHandler struct {
	svc       *event.Service
	bookings  *booking.Service
	catalog   *fallback.Catalog
	maxUpload int64
}

func NewEventsHandler(svc *event.Service, bookings *booking.Service, catalog *fallback.Catalog, maxUpload int64) *EventsHandler {
	if catalog == nil {
		catalog = fallback.New()
	}
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &EventsHandler{svc: svc, bookings: bookings, catalog: catalog, maxUpload: maxUpload}
}

// List never fails: any store error serves the static catalog instead.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Msg("event list failed, serving fallback catalog")
		metrics.RecordFallback("list")
		response.Data(w, http.StatusOK, dto.EventListResp{
			Source: dto.SourceFallback,
			Events: dto.ToEventResps(h.catalog.All()),
		})
		return
	}

	response.Data(w, http.StatusOK, dto.EventListResp{
		Source: dto.SourceLive,
		Events: dto.ToEventResps(items),
	})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := domain.NormalizeSlug(chi.URLParam(r, "slug"))
	if slug == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"slug": "is required",
		}))
		return
	}

	ev, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if !domain.IsUnavailable(err) {
			response.Err(w, r, err)
			return
		}
		logger.WithCtx(r.Context()).Warn().Err(err).Str("slug", slug).Msg("event detail failed, trying fallback catalog")
		metrics.RecordFallback("detail")

		fb, ok := h.catalog.FindBySlug(slug)
		if !ok {
			response.Err(w, r, domain.ErrNotFound("event not found"))
			return
		}
		response.Data(w, http.StatusOK, dto.EventDetailResp{
			Source: dto.SourceFallback,
			Event:  dto.ToEventResp(fb),
		})
		return
	}

	response.Data(w, http.StatusOK, dto.EventDetailResp{
		Source:   dto.SourceLive,
		Event:    dto.ToEventResp(ev),
		Bookings: h.countBookings(r, ev.ID),
	})
}

// countBookings is display-only, so failures read as zero.
func (h *EventsHandler) countBookings(r *http.Request, eventID string) int {
	if h.bookings == nil {
		return 0
	}
	n, err := h.bookings.CountForEvent(r.Context(), eventID)
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Str("event_id", eventID).Msg("booking count failed")
		return 0
	}
	return n
}

func (h *EventsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	slug := domain.NormalizeSlug(chi.URLParam(r, "slug"))
	if slug == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"slug": "is required",
		}))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"limit": "must be a positive integer",
			}))
			return
		}
		limit = n
	}

	items, err := h.svc.Similar(r.Context(), slug, limit)
	if err != nil {
		if !domain.IsUnavailable(err) {
			response.Err(w, r, err)
			return
		}
		logger.WithCtx(r.Context()).Warn().Err(err).Str("slug", slug).Msg("similar events failed, serving empty list")
		metrics.RecordFallback("similar")
		response.Data(w, http.StatusOK, dto.EventListResp{
			Source: dto.SourceFallback,
			Events: []dto.EventResp{},
		})
		return
	}

	response.Data(w, http.StatusOK, dto.EventListResp{
		Source: dto.SourceLive,
		Events: dto.ToEventResps(items),
	})
}

// Create accepts JSON or multipart/form-data with an optional "image" file.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		req dto.CreateEventReq
		img *event.ImageFile
	)
	if validate.IsMultipart(r) {
		form, err := validate.ParseMultipart(w, r, h.maxUpload)
		if err != nil {
			response.Err(w, r, err)
			return
		}
		if req, err = createReqFromForm(form); err != nil {
			response.Err(w, r, err)
			return
		}
		img = imageOf(form)
	} else if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Create(r.Context(), event.CreateCmd{Input: req.ToInput(), Image: img})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	metrics.RecordEventCreated()

	response.Data(w, http.StatusCreated, dto.ToEventResp(ev))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var (
		req dto.UpdateEventReq
		img *event.ImageFile
	)
	if validate.IsMultipart(r) {
		form, err := validate.ParseMultipart(w, r, h.maxUpload)
		if err != nil {
			response.Err(w, r, err)
			return
		}
		if req, err = updateReqFromForm(form); err != nil {
			response.Err(w, r, err)
			return
		}
		img = imageOf(form)
	} else if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Update(r.Context(), event.UpdateCmd{Slug: slug, Patch: req.ToPatch(), Image: img})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}
