package http

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"credit-calc/domain"
	"credit-calc/logger"
	"credit-calc/service"
)

type CalculateRequest struct {
	Type      string  `json:"type" validate:"required,oneof=annuity diff"`
	Principal float64 `json:"principal" validate:"gte=0"`
	Payment   float64 `json:"payment" validate:"gte=0"`
	Periods   int     `json:"periods" validate:"min=-600,max=600"`
	Interest  float64 `json:"interest" validate:"gte=0,lte=1000"`
}

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input CalculateRequest
	if !decodeBody(w, r, &input) {
		return
	}

	strategy, err := domain.ParseStrategy(input.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params := domain.NewLoanParameters(input.Principal, input.Payment, input.Interest, input.Periods)

	result, err := h.service.CalculateLoan(r.Context(), params, strategy)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCalculation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Error("error calculating loan", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if result.Rejected() {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		logger.Error("error loading history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if records == nil {
		records = []domain.CalculationRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
