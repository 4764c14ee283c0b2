package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"carebook/internal/careservices/service"
	httputil "carebook/pkg/http"
	"carebook/pkg/logger"
	"carebook/pkg/model"
)

type CareServiceHandler struct {
	service service.CareServiceService
	log     *logger.Logger
}

func NewCareServiceHandler(service service.CareServiceService, log *logger.Logger) *CareServiceHandler {
	return &CareServiceHandler{
		service: service,
		log:     log,
	}
}

func (h *CareServiceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cs model.CareService
	if err := json.NewDecoder(r.Body).Decode(&cs); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &cs); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, cs)
}

func (h *CareServiceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	cs, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, cs)
}

func (h *CareServiceHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	services, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, services, totalCount, limit, offset)
}

func (h *CareServiceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.CareServiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	cs, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, cs)
}

func (h *CareServiceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CareServiceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/care-services", h.Create)
	router.GET("/api/v1/care-services", h.GetAll)
	router.GET("/api/v1/care-services/id/:id", h.GetByID)
	router.PATCH("/api/v1/care-services/id/:id", h.Update)
	router.DELETE("/api/v1/care-services/id/:id", h.Delete)
}
