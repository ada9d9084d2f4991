package repository

import (
	"context"

	"credit-calc/domain"
)

type LoanRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}
