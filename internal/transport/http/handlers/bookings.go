package handlers

import (
	"net/http"

	"github.com/baechuer/devevent-service/internal/application/booking"
	"github.com/baechuer/devevent-service/internal/metrics"
	"github.com/baechuer/devevent-service/internal/transport/http/dto"
	"github.com/baechuer/devevent-service/internal/transport/http/response"
	"github.com/baechuer/devevent-service/internal/transport/http/validate"
)

type BookingsHandler struct {
	svc *booking.Service
}

func NewBookingsHandler(svc *booking.Service) *BookingsHandler {
	return &BookingsHandler{svc: svc}
}

func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingReq
	if err := validate.DecodeJSON(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), booking.CreateCmd{EventID: req.EventID, Email: req.Email})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	metrics.RecordBookingCreated()

	response.Data(w, http.StatusCreated, dto.ToBookingResp(b))
}
