package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"credit-calc/domain"
	"credit-calc/logger"
	"credit-calc/service"
)

type TermScanRequest struct {
	Principal         float64 `json:"principal" validate:"gt=0"`
	Interest          float64 `json:"interest" validate:"gt=0,lte=1000"`
	MinPeriods        int     `json:"min_periods" validate:"gt=0"`
	MaxPeriods        int     `json:"max_periods" validate:"gtefield=MinPeriods"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment" validate:"gte=0"`
}

type TermScanHandler struct {
	service *service.TermScanService
}

func NewTermScanHandler(service *service.TermScanService) *TermScanHandler {
	return &TermScanHandler{service: service}
}

func (h *TermScanHandler) ScanTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input TermScanRequest
	if !decodeBody(w, r, &input) {
		return
	}

	result, err := h.service.Scan(r.Context(), domain.TermScanInput{
		Principal:         input.Principal,
		Interest:          input.Interest,
		MinPeriods:        input.MinPeriods,
		MaxPeriods:        input.MaxPeriods,
		MaxMonthlyPayment: input.MaxMonthlyPayment,
	})
	if err != nil {
		logger.Info("term scan rejected", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
