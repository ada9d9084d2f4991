package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"credit-calc/domain"
	"credit-calc/logger"
	"credit-calc/repository"
)

type LoanService struct {
	repo     repository.LoanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	now      func() time.Time
}

// NewLoanService creates a new LoanService with the given repository and
// result cache. Either may be nil.
func NewLoanService(repo repository.LoanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *LoanService {
	return &LoanService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// CalculateLoan runs the loan engine for params, serving repeated requests
// from the cache. Only ErrInvalidCalculation is returned as an error; a
// rejected parameter set is a regular result.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	params domain.LoanParameters,
	strategy domain.Strategy,
) (domain.CalculationResult, error) {
	return s.calculate(ctx, params, strategy, true)
}

// Quote is CalculateLoan without the history record, for callers that
// evaluate many candidate parameter sets.
func (s *LoanService) Quote(
	ctx context.Context,
	params domain.LoanParameters,
	strategy domain.Strategy,
) (domain.CalculationResult, error) {
	return s.calculate(ctx, params, strategy, false)
}

func (s *LoanService) calculate(
	ctx context.Context,
	params domain.LoanParameters,
	strategy domain.Strategy,
	record bool,
) (domain.CalculationResult, error) {
	key := cacheKey(params, strategy)

	result, ok := s.cached(ctx, key)
	if ok {
		logger.Debug("calculation served from cache", zap.String("key", key))
	} else {
		var err error
		result, err = Calculate(params, strategy)
		if err != nil {
			return domain.CalculationResult{}, err
		}
		s.store(ctx, key, result)
	}

	if record {
		s.record(ctx, params, strategy, result)
	}

	return result, nil
}

// record is best effort, the result is already computed.
func (s *LoanService) record(
	ctx context.Context,
	params domain.LoanParameters,
	strategy domain.Strategy,
	result domain.CalculationResult,
) {
	if s.repo == nil {
		return
	}
	err := s.repo.Save(ctx, domain.CalculationRecord{
		ID:         uuid.NewString(),
		Strategy:   strategy,
		Parameters: params,
		Result:     result,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		logger.Warn("failed to save loan calculation", zap.Error(err))
	}
}

// History returns the most recent calculations, newest first.
func (s *LoanService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load calculation history: %w", err)
	}
	return records, nil
}

func (s *LoanService) cached(ctx context.Context, key string) (domain.CalculationResult, bool) {
	if s.cache == nil {
		return domain.CalculationResult{}, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		return domain.CalculationResult{}, false
	}
	if !ok {
		return domain.CalculationResult{}, false
	}

	var result domain.CalculationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Warn("discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return domain.CalculationResult{}, false
	}
	return result, true
}

func (s *LoanService) store(ctx context.Context, key string, result domain.CalculationResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		logger.Warn("failed to encode calculation for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.Warn("failed to cache calculation", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(params domain.LoanParameters, strategy domain.Strategy) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return "loan:" + string(strategy) +
		":" + format(params.Principal) +
		":" + format(params.MonthlyPayment) +
		":" + format(params.AnnualInterestPercent) +
		":" + strconv.Itoa(params.Periods)
}

// requireSolved converts a rejected result into ErrInsufficientParameters for
// callers that cannot report a rejection as a value.
func requireSolved(result domain.CalculationResult, err error) (domain.CalculationResult, error) {
	if err != nil {
		return result, err
	}
	if result.Rejected() {
		return result, fmt.Errorf("%w: %s", ErrInsufficientParameters, result.Reason)
	}
	return result, nil
}

// IsCalculationError reports whether err came from the loan engine rather
// than from infrastructure.
func IsCalculationError(err error) bool {
	return errors.Is(err, ErrInvalidCalculation) ||
		errors.Is(err, ErrInsufficientParameters) ||
		errors.Is(err, ErrNoAffordableTerm)
}
