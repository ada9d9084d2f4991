package service

import (
	"context"
	"math"

	"credit-calc/domain"
)

type ComparisonService struct {
	loanService *LoanService
}

func NewComparisonService(loanService *LoanService) *ComparisonService {
	return &ComparisonService{loanService: loanService}
}

// Compare prices the same credit under both repayment strategies.
func (s *ComparisonService) Compare(
	ctx context.Context,
	principal float64,
	periods int,
	interest float64,
) (domain.ComparisonResult, error) {
	params := domain.NewLoanParameters(principal, 0, interest, periods)

	annuity, err := requireSolved(s.loanService.Quote(ctx, params, domain.StrategyAnnuity))
	if err != nil {
		return domain.ComparisonResult{}, err
	}
	diff, err := requireSolved(s.loanService.Quote(ctx, params, domain.StrategyDifferentiated))
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	result := domain.ComparisonResult{
		Annuity: domain.StrategyResult{
			Strategy:     domain.StrategyAnnuity,
			FirstPayment: annuity.MonthlyPayment,
			LastPayment:  annuity.MonthlyPayment,
			TotalPaid:    annuity.MonthlyPayment * float64(annuity.Periods),
			Overpayment:  annuity.Overpayment,
		},
		Differentiated: summarizeSchedule(diff),
	}

	// ties go to the annuity, its payment never changes
	if result.Differentiated.Overpayment < result.Annuity.Overpayment {
		result.Cheaper = domain.StrategyDifferentiated
	} else {
		result.Cheaper = domain.StrategyAnnuity
	}
	result.Savings = math.Abs(result.Annuity.Overpayment - result.Differentiated.Overpayment)

	return result, nil
}

func summarizeSchedule(result domain.CalculationResult) domain.StrategyResult {
	summary := domain.StrategyResult{
		Strategy:    domain.StrategyDifferentiated,
		Overpayment: result.Overpayment,
	}
	if len(result.Schedule) == 0 {
		return summary
	}
	summary.FirstPayment = result.Schedule[0].Amount
	summary.LastPayment = result.Schedule[len(result.Schedule)-1].Amount
	for _, p := range result.Schedule {
		summary.TotalPaid += p.Amount
	}
	return summary
}
