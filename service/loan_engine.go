package service

import (
	"fmt"
	"math"

	"credit-calc/domain"
)

const rejectedReason = "insufficient or contradictory parameters"

// Classify resolves the parameter set to the calculation it allows. The
// annuity patterns are tried in order and the first match wins.
func Classify(params domain.LoanParameters, strategy domain.Strategy) domain.Mode {
	rate := params.MonthlyRate()
	principal := params.Principal
	payment := params.MonthlyPayment
	periods := params.Periods

	switch strategy {
	case domain.StrategyAnnuity:
		switch {
		case principal > 0 && payment > 0 && rate > 0:
			return domain.ModeSolveForPeriods
		case principal > 0 && periods > 0 && rate > 0:
			return domain.ModeSolveForPayment
		case payment > 0 && periods > 0 && rate > 0:
			return domain.ModeSolveForPrincipal
		}
	case domain.StrategyDifferentiated:
		if principal > 0 && periods > 0 && rate > 0 {
			return domain.ModeDifferentiated
		}
	}
	return domain.ModeRejected
}

// Calculate derives the missing quantity. Unsolvable input yields a rejected
// result with a nil error; ErrInvalidCalculation is returned only when the
// formulas themselves are undefined for the input.
func Calculate(params domain.LoanParameters, strategy domain.Strategy) (domain.CalculationResult, error) {
	rate := params.MonthlyRate()

	switch Classify(params, strategy) {
	case domain.ModeSolveForPeriods:
		return solveForPeriods(params.Principal, params.MonthlyPayment, rate)
	case domain.ModeSolveForPayment:
		return solveForPayment(params.Principal, params.Periods, rate)
	case domain.ModeSolveForPrincipal:
		return solveForPrincipal(params.MonthlyPayment, params.Periods, rate)
	case domain.ModeDifferentiated:
		return differentiatedSchedule(params.Principal, params.Periods, rate)
	}

	return domain.CalculationResult{
		Mode:   domain.ModeRejected,
		Reason: rejectedReason,
	}, nil
}

func solveForPeriods(principal, payment, rate float64) (domain.CalculationResult, error) {
	interest := rate * principal
	if payment <= interest {
		return domain.CalculationResult{}, fmt.Errorf(
			"%w: payment %.0f does not cover the first month's interest %.2f",
			ErrInvalidCalculation, payment, interest,
		)
	}

	n := math.Ceil(math.Log(payment/(payment-interest)) / math.Log(1+rate))
	if !finite(n) || n > math.MaxInt32 {
		return domain.CalculationResult{}, fmt.Errorf("%w: period count is out of range", ErrInvalidCalculation)
	}
	periods := int(n)

	return domain.CalculationResult{
		Mode:           domain.ModeSolveForPeriods,
		Periods:        periods,
		MonthlyPayment: payment,
		Principal:      principal,
		Overpayment:    math.Ceil(float64(periods)*payment - principal),
	}, nil
}

func solveForPayment(principal float64, periods int, rate float64) (domain.CalculationResult, error) {
	growth := math.Pow(1+rate, float64(periods))
	payment := math.Ceil(principal * (rate * growth / (growth - 1)))
	if !finite(payment) {
		return domain.CalculationResult{}, fmt.Errorf("%w: payment is undefined for %d periods", ErrInvalidCalculation, periods)
	}

	return domain.CalculationResult{
		Mode:           domain.ModeSolveForPayment,
		Periods:        periods,
		MonthlyPayment: payment,
		Principal:      principal,
		Overpayment:    math.Ceil(float64(periods)*payment - principal),
	}, nil
}

func solveForPrincipal(payment float64, periods int, rate float64) (domain.CalculationResult, error) {
	growth := math.Pow(1+rate, float64(periods))
	principal := payment / (rate * growth / (growth - 1))
	if !finite(principal) {
		return domain.CalculationResult{}, fmt.Errorf("%w: principal is undefined for %d periods", ErrInvalidCalculation, periods)
	}

	// the floor is for display only, the overpayment uses the exact principal
	return domain.CalculationResult{
		Mode:           domain.ModeSolveForPrincipal,
		Periods:        periods,
		MonthlyPayment: payment,
		Principal:      math.Floor(principal),
		Overpayment:    math.Ceil(float64(periods)*payment - principal),
	}, nil
}

func differentiatedSchedule(principal float64, periods int, rate float64) (domain.CalculationResult, error) {
	if periods > MaxScheduleMonths {
		return domain.CalculationResult{}, fmt.Errorf(
			"%w: period count %d is out of range, a schedule holds at most %d payments",
			ErrInvalidCalculation, periods, MaxScheduleMonths,
		)
	}

	n := float64(periods)
	schedule := make([]domain.SchedulePayment, 0, periods)
	totalPaid := 0.0

	for i := 0; i < periods; i++ {
		payment := math.Ceil(principal/n + rate*(principal-(principal*float64(i))/n))
		totalPaid += payment
		schedule = append(schedule, domain.SchedulePayment{
			Month:  i + 1,
			Amount: payment,
		})
	}

	return domain.CalculationResult{
		Mode:        domain.ModeDifferentiated,
		Periods:     periods,
		Principal:   principal,
		Schedule:    schedule,
		Overpayment: math.Ceil(totalPaid - principal),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
