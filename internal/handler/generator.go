package handler

import (
	"errors"
	"net/http"

	"github.com/keyforge/keyforge-go/internal/generator"
	"github.com/keyforge/keyforge-go/internal/model"
	"github.com/keyforge/keyforge-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password and passphrase generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		if isGenerationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGeneratePassphrase handles POST /api/v1/generate/passphrase requests.
func (h *GeneratorHandler) HandleGeneratePassphrase(w http.ResponseWriter, r *http.Request) {
	var req model.PassphraseRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.GeneratePassphrase(req)
	if err != nil {
		if isGenerationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func isGenerationError(err error) bool {
	return errors.Is(err, generator.ErrEmptyPool) ||
		errors.Is(err, generator.ErrInvalidLength) ||
		errors.Is(err, generator.ErrInvalidWordCount)
}
