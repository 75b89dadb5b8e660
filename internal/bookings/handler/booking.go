package handler

import (
	"net/http"

	"tablebot/internal/bookings/service"
	httputil "tablebot/pkg/http"
	"tablebot/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

type DietaryPreferenceResponse struct {
	CustomerName string `json:"customer_name"`
	Dietary      string `json:"dietary"`
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListByCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListActiveByCustomer(r.Context(), ps.ByName("name"))
	if err != nil {
		h.writeError(w, "ListByCustomer", err)
		return
	}

	if err := httputil.WriteList(w, bookings, len(bookings)); err != nil {
		h.log.Error("failed to write list response", "handler", "ListByCustomer", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) DietaryPreference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	pref, err := h.service.DietaryPreference(r.Context(), name)
	if err != nil {
		h.writeError(w, "DietaryPreference", err)
		return
	}

	if err := httputil.WriteSuccess(w, DietaryPreferenceResponse{
		CustomerName: name,
		Dietary:      string(pref),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "DietaryPreference", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.GET("/api/v1/customers/:name/bookings", h.ListByCustomer)
	router.GET("/api/v1/customers/:name/dietary-preference", h.DietaryPreference)
}
