package service

import "errors"

var (
	// ErrInsufficientParameters is returned by callers that need a solvable
	// parameter set and got one that classifies as rejected.
	ErrInsufficientParameters = errors.New("incorrect parameters")

	// ErrInvalidCalculation marks input for which the closed-form formulas
	// are undefined, e.g. a payment that never amortizes the principal.
	ErrInvalidCalculation = errors.New("invalid calculation")

	ErrNoAffordableTerm = errors.New("no term fits the maximum monthly payment")
)
