package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"carebook/internal/shiftreports/service"
	httputil "carebook/pkg/http"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

type ShiftReportHandler struct {
	service service.ShiftReportService
	log     *logger.Logger
}

func NewShiftReportHandler(service service.ShiftReportService, log *logger.Logger) *ShiftReportHandler {
	return &ShiftReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ShiftReportHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ShiftReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	report, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, report)
}

func (h *ShiftReportHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	report, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}

func (h *ShiftReportHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	bookingID := strings.TrimSpace(query.Get("booking_id"))
	carerID := strings.TrimSpace(query.Get("carer_id"))

	if bookingID == "" && carerID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'booking_id' or 'carer_id' query parameter is required",
		})
		return
	}

	if bookingID != "" {
		reports, err := h.service.GetByBooking(r.Context(), bookingID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteSuccess(w, reports)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reports, err := h.service.GetByCarer(r.Context(), carerID, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, reports)
}

type issueTokenRequest struct {
	BookingID string `json:"booking_id"`
	CarerID   string `json:"carer_id"`
}

type issueTokenResponse struct {
	ShiftToken string `json:"shift_token"`
}

func (h *ShiftReportHandler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	token, err := h.service.IssueToken(r.Context(), req.BookingID, req.CarerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, issueTokenResponse{ShiftToken: token})
}

func (h *ShiftReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/shift-reports", h.Submit)
	router.GET("/api/v1/shift-reports/search", h.Search)
	router.GET("/api/v1/shift-reports/id/:id", h.GetByID)
	router.POST("/api/v1/shift-reports/tokens", h.IssueToken)
}
