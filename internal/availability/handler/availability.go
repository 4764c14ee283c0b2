package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"carebook/internal/availability/service"
	httputil "carebook/pkg/http"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	carerID := strings.TrimSpace(query.Get("carer_id"))
	date := strings.TrimSpace(query.Get("date"))

	if carerID == "" || date == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'carer_id' and 'date' query parameters are required",
		})
		return
	}

	slots, err := h.service.GetSlots(r.Context(), carerID, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *AvailabilityHandler) GetDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	carerID := strings.TrimSpace(query.Get("carer_id"))
	month := strings.TrimSpace(query.Get("month"))

	if carerID == "" || month == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'carer_id' and 'month' query parameters are required",
		})
		return
	}

	dates, err := h.service.GetDates(r.Context(), carerID, month)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, dates)
}

func (h *AvailabilityHandler) CheckSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SlotCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.CheckSlot(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *AvailabilityHandler) UpsertDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var day model.CarerDay
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.UpsertDay(r.Context(), &day); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, day)
}

func (h *AvailabilityHandler) GetDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	carerID := strings.TrimSpace(query.Get("carer_id"))
	date := strings.TrimSpace(query.Get("date"))

	if carerID == "" || date == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'carer_id' and 'date' query parameters are required",
		})
		return
	}

	day, err := h.service.GetDay(r.Context(), carerID, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, day)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/slots", h.GetSlots)
	router.GET("/api/v1/availability/dates", h.GetDates)
	router.POST("/api/v1/availability/check", h.CheckSlot)
	router.POST("/api/v1/availability/days", h.UpsertDay)
	router.GET("/api/v1/availability/days", h.GetDay)
}
