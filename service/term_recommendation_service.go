package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"credit-calc/domain"
	"credit-calc/logger"
)

type TermScanService struct {
	loanService *LoanService
}

func NewTermScanService(loanService *LoanService) *TermScanService {
	return &TermScanService{loanService: loanService}
}

// Scan prices an annuity for every term in [MinPeriods, MaxPeriods] and
// recommends the affordable term with the smallest overpayment.
func (s *TermScanService) Scan(
	ctx context.Context,
	input domain.TermScanInput,
) (domain.TermScanResult, error) {
	if input.Principal <= 0 || input.Interest <= 0 {
		return domain.TermScanResult{}, fmt.Errorf("%w: principal and interest must be positive", ErrInsufficientParameters)
	}
	if input.MinPeriods <= 0 || input.MaxPeriods <= 0 {
		return domain.TermScanResult{}, errors.New("invalid term range")
	}
	if input.MinPeriods > input.MaxPeriods {
		return domain.TermScanResult{}, errors.New("minimum term is greater than maximum term")
	}
	if input.MaxPeriods > MaxTermMonths {
		return domain.TermScanResult{}, fmt.Errorf("maximum term exceeds the limit of %d months", MaxTermMonths)
	}
	if input.MaxPeriods-input.MinPeriods > MaxTermRangeMonths {
		return domain.TermScanResult{}, fmt.Errorf("term range exceeds the maximum of %d months", MaxTermRangeMonths)
	}
	if input.MaxMonthlyPayment < 0 {
		return domain.TermScanResult{}, errors.New("invalid maximum monthly payment")
	}

	options := []domain.TermOption{}
	for term := input.MinPeriods; term <= input.MaxPeriods; term++ {
		params := domain.NewLoanParameters(input.Principal, 0, input.Interest, term)

		result, err := requireSolved(s.loanService.Quote(ctx, params, domain.StrategyAnnuity))
		if err != nil {
			logger.Warn("skipping term", zap.Int("periods", term), zap.Error(err))
			continue
		}
		if input.MaxMonthlyPayment > 0 && result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		options = append(options, domain.TermOption{
			Periods:        term,
			MonthlyPayment: result.MonthlyPayment,
			Overpayment:    result.Overpayment,
		})
	}

	if len(options) == 0 {
		return domain.TermScanResult{}, ErrNoAffordableTerm
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Overpayment != options[j].Overpayment {
			return options[i].Overpayment < options[j].Overpayment
		}
		return options[i].Periods < options[j].Periods
	})

	return domain.TermScanResult{
		RecommendedPeriods: options[0].Periods,
		Options:            options,
	}, nil
}
