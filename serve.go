package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"credit-calc/config"
	httpLayer "credit-calc/http"
	"credit-calc/logger"
	"credit-calc/repository"
	"credit-calc/service"
)

func runServer(c *cli.Context) error {
	cfg, err := config.Load(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, "stdout"); err != nil {
		return err
	}

	cache, closeCache := newCache(cfg)
	defer closeCache()

	loanRepo := repository.NewLoanRepositoryMemory(cfg.History.Capacity)
	loanService := service.NewLoanService(loanRepo, cache, cfg.CacheTTL())

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RefillInterval())
	defer rateLimiter.Stop()

	mux := httpLayer.NewRouter(httpLayer.Handlers{
		Loan:       httpLayer.NewLoanHandler(loanService),
		Comparison: httpLayer.NewComparisonHandler(service.NewComparisonService(loanService)),
		TermScan:   httpLayer.NewTermScanHandler(service.NewTermScanService(loanService)),
	}, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("credit calculator listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		logger.Error("error starting server", zap.Error(err))
		return err
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited")
	return nil
}

// newCache picks the configured result cache. An unreachable Redis degrades
// to the in-memory cache.
func newCache(cfg *config.AppConfig) (repository.CacheRepository, func()) {
	if !strings.EqualFold(cfg.Cache.Backend, "redis") {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	logger.Info("using redis result cache", zap.String("addr", cfg.Redis.Addr))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("error closing redis client", zap.Error(err))
		}
	}
}
