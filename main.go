package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mortgage-calculator/config"
	httpLayer "mortgage-calculator/http"
	"mortgage-calculator/logger"
	"mortgage-calculator/presenter"
	"mortgage-calculator/repository"
	"mortgage-calculator/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	limiter, closeLimiter := newLimiter(cfg, zl)
	defer closeLimiter()

	html, err := presenter.NewHTMLRenderer()
	if err != nil {
		zl.Fatal("templates", zap.Error(err))
	}

	router, err := httpLayer.NewRouter(httpLayer.Deps{
		Config:   cfg,
		Log:      zl,
		Mortgage: service.NewMortgageService(zl),
		Contact:  service.NewContactService(zl),
		HTML:     html,
		PDF:      presenter.NewPDFRenderer(),
		Limiter:  limiter,
	})
	if err != nil {
		zl.Fatal("router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("mortgage calculator listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		zl.Error("server failed", zap.Error(err))
		return
	case <-quit:
		zl.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}

// newLimiter uses Redis when an address is configured so that replicas
// share one budget, and an in-process token bucket otherwise.
func newLimiter(cfg *config.Config, zl *zap.Logger) (httpLayer.Limiter, func()) {
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := repository.NewRedisClient(ctx, cfg.Redis.Addr)
		if err == nil {
			zl.Info("rate limiting via redis", zap.String("addr", cfg.Redis.Addr))
			store := repository.NewRedisCounter(client, "mortgage:ratelimit:")
			return httpLayer.NewWindowLimiter(store, cfg.RateLimit.Capacity, cfg.RateLimit.Window, zl),
				func() { client.Close() }
		}
		zl.Warn("redis unavailable, rate limiting in process", zap.Error(err))
	}

	rl := httpLayer.NewTokenBucketLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	return rl, rl.Stop
}
