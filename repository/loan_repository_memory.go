package repository

import (
	"context"
	"sync"

	"credit-calc/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// It keeps at most capacity records and drops the oldest ones first.
type LoanRepositoryMemory struct {
	mu       sync.RWMutex
	capacity int
	data     []domain.CalculationRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
// A capacity <= 0 keeps every record.
func NewLoanRepositoryMemory(capacity int) *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		capacity: capacity,
		data:     []domain.CalculationRecord{},
	}
}

// Save stores the calculation record in memory.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if r.capacity > 0 && len(r.data) > r.capacity {
		r.data = append([]domain.CalculationRecord(nil), r.data[len(r.data)-r.capacity:]...)
	}
	return nil
}

func (r *LoanRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.CalculationRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
