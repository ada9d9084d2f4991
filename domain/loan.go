package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Strategy selects how the credit is repaid.
type Strategy string

const (
	StrategyAnnuity        Strategy = "annuity"
	StrategyDifferentiated Strategy = "diff"
)

var ErrUnknownStrategy = errors.New("unknown repayment strategy")

// ParseStrategy accepts the values of the --type flag.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyAnnuity:
		return StrategyAnnuity, nil
	case StrategyDifferentiated:
		return StrategyDifferentiated, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// LoanParameters holds the known quantities of a credit. A zero value means
// the quantity is unknown and has to be derived.
type LoanParameters struct {
	Principal             float64 `json:"principal"`
	MonthlyPayment        float64 `json:"payment"`
	AnnualInterestPercent float64 `json:"interest"`
	Periods               int     `json:"periods"`
}

// NewLoanParameters builds the parameter set in one step. The sign of periods
// is dropped.
func NewLoanParameters(principal, payment, interest float64, periods int) LoanParameters {
	if periods < 0 {
		periods = -periods
	}
	return LoanParameters{
		Principal:             principal,
		MonthlyPayment:        payment,
		AnnualInterestPercent: interest,
		Periods:               periods,
	}
}

// MonthlyRate converts the annual percentage to a fractional monthly rate.
func (p LoanParameters) MonthlyRate() float64 {
	return 0.01 * p.AnnualInterestPercent / 12
}

// Mode is the calculation a parameter set resolves to.
type Mode string

const (
	ModeSolveForPeriods   Mode = "solve_for_periods"
	ModeSolveForPayment   Mode = "solve_for_payment"
	ModeSolveForPrincipal Mode = "solve_for_principal"
	ModeDifferentiated    Mode = "differentiated"
	ModeRejected          Mode = "rejected"
)

type SchedulePayment struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// CalculationResult carries the derived value for Mode. Amounts are already
// rounded for display.
type CalculationResult struct {
	Mode           Mode              `json:"mode"`
	Periods        int               `json:"periods,omitempty"`
	MonthlyPayment float64           `json:"monthly_payment,omitempty"`
	Principal      float64           `json:"principal,omitempty"`
	Schedule       []SchedulePayment `json:"schedule,omitempty"`
	Overpayment    float64           `json:"overpayment"`
	Reason         string            `json:"reason,omitempty"`
}

func (r CalculationResult) Rejected() bool {
	return r.Mode == ModeRejected
}

// CalculationRecord is one entry of the calculation history.
type CalculationRecord struct {
	ID         string            `json:"id"`
	Strategy   Strategy          `json:"strategy"`
	Parameters LoanParameters    `json:"parameters"`
	Result     CalculationResult `json:"result"`
	CreatedAt  time.Time         `json:"created_at"`
}
