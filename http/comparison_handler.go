package http

import (
	"net/http"

	"go.uber.org/zap"

	"credit-calc/logger"
	"credit-calc/service"
)

type CompareRequest struct {
	Principal float64 `json:"principal" validate:"gt=0"`
	Periods   int     `json:"periods" validate:"min=-600,max=600,ne=0"`
	Interest  float64 `json:"interest" validate:"gt=0,lte=1000"`
}

type ComparisonHandler struct {
	service *service.ComparisonService
}

func NewComparisonHandler(service *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: service}
}

func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input CompareRequest
	if !decodeBody(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input.Principal, input.Periods, input.Interest)
	if err != nil {
		if service.IsCalculationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Error("error comparing strategies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
