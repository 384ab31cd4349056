package handler

import (
	"errors"
	"net/http"

	"github.com/keyforge/keyforge-go/internal/model"
	"github.com/keyforge/keyforge-go/internal/service"
)

// StrengthHandler handles HTTP requests for strength and breach checks.
type StrengthHandler struct {
	service *service.StrengthService
}

// NewStrengthHandler creates a new StrengthHandler.
func NewStrengthHandler(svc *service.StrengthService) *StrengthHandler {
	return &StrengthHandler{service: svc}
}

// HandleCheckStrength handles POST /api/v1/strength requests.
func (h *StrengthHandler) HandleCheckStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.Check(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPasswordMissing) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCheckBreach handles POST /api/v1/breach requests.
func (h *StrengthHandler) HandleCheckBreach(w http.ResponseWriter, r *http.Request) {
	var req model.BreachRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CheckBreach(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPasswordMissing) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
