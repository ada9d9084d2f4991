package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-calc/domain"
	"credit-calc/repository"
)

func TestScan(t *testing.T) {
	service := NewTermScanService(NewLoanService(nil, nil, 0))

	result, err := service.Scan(context.Background(), domain.TermScanInput{
		Principal:         100000,
		Interest:          12,
		MinPeriods:        6,
		MaxPeriods:        24,
		MaxMonthlyPayment: 8885,
	})

	require.NoError(t, err)
	// 11 months costs more than 8885 per month
	assert.Equal(t, 12, result.RecommendedPeriods)
	assert.Len(t, result.Options, 13)
	for _, option := range result.Options {
		assert.LessOrEqual(t, option.MonthlyPayment, 8885.0)
	}
	for i := 1; i < len(result.Options); i++ {
		assert.LessOrEqual(t, result.Options[i-1].Overpayment, result.Options[i].Overpayment)
	}
}

func TestScan_NoCeiling(t *testing.T) {
	service := NewTermScanService(NewLoanService(nil, nil, 0))

	result, err := service.Scan(context.Background(), domain.TermScanInput{
		Principal: 50000, Interest: 8, MinPeriods: 3, MaxPeriods: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.RecommendedPeriods)
	assert.Len(t, result.Options, 3)
}

func TestScan_DoesNotWriteHistory(t *testing.T) {
	repo := &MockLoanRepository{}
	cache := repository.NewMemoryCache()
	service := NewTermScanService(NewLoanService(repo, cache, time.Hour))

	result, err := service.Scan(context.Background(), domain.TermScanInput{
		Principal: 100000, Interest: 12, MinPeriods: 1, MaxPeriods: 121,
	})

	require.NoError(t, err)
	assert.Len(t, result.Options, 121)
	assert.False(t, repo.SaveCalled)
	assert.Empty(t, repo.Saved)
	// terms are still cached for later requests
	assert.Equal(t, 121, cache.Len())
}

func TestScan_Errors(t *testing.T) {
	service := NewTermScanService(NewLoanService(nil, nil, 0))
	ctx := context.Background()

	tests := []struct {
		name  string
		input domain.TermScanInput
	}{
		{name: "no principal", input: domain.TermScanInput{Interest: 5, MinPeriods: 1, MaxPeriods: 2}},
		{name: "no interest", input: domain.TermScanInput{Principal: 1000, MinPeriods: 1, MaxPeriods: 2}},
		{name: "inverted range", input: domain.TermScanInput{Principal: 1000, Interest: 5, MinPeriods: 10, MaxPeriods: 2}},
		{name: "range too wide", input: domain.TermScanInput{Principal: 1000, Interest: 5, MinPeriods: 1, MaxPeriods: 200}},
		{name: "term too long", input: domain.TermScanInput{Principal: 1000, Interest: 5, MinPeriods: 590, MaxPeriods: 601}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Scan(ctx, tt.input)
			assert.Error(t, err)
		})
	}

	_, err := service.Scan(ctx, domain.TermScanInput{
		Principal: 100000, Interest: 12, MinPeriods: 1, MaxPeriods: 6, MaxMonthlyPayment: 100,
	})
	assert.ErrorIs(t, err, ErrNoAffordableTerm)
}
