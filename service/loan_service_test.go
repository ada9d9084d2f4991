package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"credit-calc/domain"
	"credit-calc/logger"
	"credit-calc/repository"
)

type MockLoanRepository struct {
	SaveCalled bool
	ForceError bool
	Saved      []domain.CalculationRecord
}

func (m *MockLoanRepository) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockLoanRepository) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	if m.ForceError {
		return nil, errors.New("recent error")
	}
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	return m.Saved[:limit], nil
}

type failingCache struct {
	getCalls, setCalls int
}

func (f *failingCache) Get(context.Context, string) (string, bool, error) {
	f.getCalls++
	return "", false, errors.New("cache down")
}

func (f *failingCache) Set(context.Context, string, string, time.Duration) error {
	f.setCalls++
	return errors.New("cache down")
}

func TestCalculateLoan_SavesRecord(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	service := NewLoanService(mockRepo, nil, 0)

	params := domain.NewLoanParameters(100000, 0, 12, 12)
	result, err := service.CalculateLoan(context.Background(), params, domain.StrategyAnnuity)

	require.NoError(t, err)
	assert.Equal(t, 8885.0, result.MonthlyPayment)
	require.True(t, mockRepo.SaveCalled)
	require.Len(t, mockRepo.Saved, 1)
	assert.NotEmpty(t, mockRepo.Saved[0].ID)
	assert.Equal(t, params, mockRepo.Saved[0].Parameters)
	assert.Equal(t, domain.StrategyAnnuity, mockRepo.Saved[0].Strategy)
}

func TestQuote_SkipsHistory(t *testing.T) {
	repo := &MockLoanRepository{}
	service := NewLoanService(repo, nil, 0)
	params := domain.NewLoanParameters(100000, 0, 12, 12)

	quoted, err := service.Quote(context.Background(), params, domain.StrategyAnnuity)
	require.NoError(t, err)
	assert.Equal(t, 8885.0, quoted.MonthlyPayment)
	assert.False(t, repo.SaveCalled)

	calculated, err := service.CalculateLoan(context.Background(), params, domain.StrategyAnnuity)
	require.NoError(t, err)
	assert.Equal(t, quoted, calculated)
	assert.Len(t, repo.Saved, 1)
}

func TestCalculateLoan_RepositoryErrorIsNotFatal(t *testing.T) {
	mockRepo := &MockLoanRepository{ForceError: true}
	service := NewLoanService(mockRepo, nil, 0)

	result, err := service.CalculateLoan(context.Background(), domain.NewLoanParameters(100000, 0, 12, 3), domain.StrategyDifferentiated)

	require.NoError(t, err)
	assert.Len(t, result.Schedule, 3)
	assert.True(t, mockRepo.SaveCalled)
}

func TestCalculateLoan_InvalidCalculationIsNotSaved(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	cache := repository.NewMemoryCache()
	service := NewLoanService(mockRepo, cache, time.Hour)

	_, err := service.CalculateLoan(context.Background(), domain.NewLoanParameters(100000, 900, 12, 0), domain.StrategyAnnuity)

	assert.ErrorIs(t, err, ErrInvalidCalculation)
	assert.False(t, mockRepo.SaveCalled)
	assert.Zero(t, cache.Len())
}

func TestCalculateLoan_RejectedIsAResult(t *testing.T) {
	service := NewLoanService(&MockLoanRepository{}, nil, 0)

	result, err := service.CalculateLoan(context.Background(), domain.NewLoanParameters(0, 0, 12, 0), domain.StrategyAnnuity)

	require.NoError(t, err)
	assert.True(t, result.Rejected())
}

func TestCalculateLoan_CacheHit(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockLoanRepository{}
	cache := repository.NewMemoryCache()
	service := NewLoanService(mockRepo, cache, time.Hour)
	params := domain.NewLoanParameters(250000, 0, 9.5, 6)

	first, err := service.CalculateLoan(ctx, params, domain.StrategyDifferentiated)
	require.NoError(t, err)
	second, err := service.CalculateLoan(ctx, params, domain.StrategyDifferentiated)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Len(t, mockRepo.Saved, 2, "every request is recorded, cached or not")
}

func TestCalculateLoan_RecordsResultCachedByQuote(t *testing.T) {
	ctx := context.Background()
	repo := &MockLoanRepository{}
	service := NewLoanService(repo, repository.NewMemoryCache(), time.Hour)
	params := domain.NewLoanParameters(100000, 0, 12, 12)

	_, err := service.Quote(ctx, params, domain.StrategyAnnuity)
	require.NoError(t, err)
	result, err := service.CalculateLoan(ctx, params, domain.StrategyAnnuity)
	require.NoError(t, err)

	require.Len(t, repo.Saved, 1)
	assert.Equal(t, result, repo.Saved[0].Result)
}

func TestCalculateLoan_MalformedCacheEntry(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewMemoryCache()
	params := domain.NewLoanParameters(100000, 0, 12, 12)
	require.NoError(t, cache.Set(ctx, cacheKey(params, domain.StrategyAnnuity), "{not json", 0))
	service := NewLoanService(nil, cache, time.Hour)

	result, err := service.CalculateLoan(ctx, params, domain.StrategyAnnuity)

	require.NoError(t, err)
	assert.Equal(t, 8885.0, result.MonthlyPayment)
}

func TestCalculateLoan_CacheFailureFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	cache := &failingCache{}
	service := NewLoanService(nil, cache, time.Hour)

	result, err := service.CalculateLoan(context.Background(), domain.NewLoanParameters(100000, 0, 12, 12), domain.StrategyAnnuity)

	require.NoError(t, err)
	assert.Equal(t, 6620.0, result.Overpayment)
	assert.Equal(t, 1, cache.getCalls)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, 1, logs.FilterMessage("cache lookup failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to cache calculation").Len())
}

func TestCacheKey_DistinguishesStrategyAndValues(t *testing.T) {
	params := domain.NewLoanParameters(100000, 0, 12.5, 12)

	assert.Equal(t, "loan:annuity:100000:0:12.5:12", cacheKey(params, domain.StrategyAnnuity))
	assert.NotEqual(t, cacheKey(params, domain.StrategyAnnuity), cacheKey(params, domain.StrategyDifferentiated))
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	service := NewLoanService(repository.NewLoanRepositoryMemory(0), nil, 0)

	for _, periods := range []int{12, 24, 36} {
		_, err := service.CalculateLoan(ctx, domain.NewLoanParameters(100000, 0, 12, periods), domain.StrategyAnnuity)
		require.NoError(t, err)
	}

	records, err := service.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 36, records[0].Parameters.Periods)
	assert.Equal(t, 24, records[1].Parameters.Periods)

	_, err = NewLoanService(&MockLoanRepository{ForceError: true}, nil, 0).History(ctx, 0)
	assert.Error(t, err)
}
