package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mindfulme/ml-service/internal/api/router"
	appconfig "github.com/mindfulme/ml-service/internal/config"
	"github.com/mindfulme/ml-service/internal/history"
	"github.com/mindfulme/ml-service/internal/http/handlers"
	"github.com/mindfulme/ml-service/internal/observability/metrics"
	"github.com/mindfulme/ml-service/internal/predictive"
	"github.com/mindfulme/ml-service/internal/realtime"
	"github.com/mindfulme/ml-service/internal/sentiment"
	"github.com/mindfulme/ml-service/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting ml-service API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"version", cfg.ServiceVersion,
	)

	// Prediction history cache is optional; without Redis the service still
	// serves predictions, just without GET /predictions re-reads.
	var store *history.Store
	if cfg.RedisAddr != "" {
		redisClient := buildRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, prediction history disabled", "error", err, "addr", cfg.RedisAddr)
		} else {
			store = history.NewStore(redisClient, cfg.HistoryTTL)
			logger.Info("prediction history cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.HistoryTTL)
		}
		cancel()
	}

	registry := prometheus.NewRegistry()
	analysisMetrics := metrics.NewAnalysisMetrics(registry)

	predictiveAnalyzer := predictive.NewAnalyzer()
	sentimentAnalyzer := sentiment.NewAnalyzer()

	routerCfg := &router.Config{
		Logger:             logger,
		HealthHandler:      handlers.NewHealthHandler(cfg.ServiceVersion),
		PredictionHandler:  handlers.NewPredictionHandler(predictiveAnalyzer, store, analysisMetrics, logger),
		AnalysisHandler:    handlers.NewAnalysisHandler(sentimentAnalyzer, analysisMetrics, logger),
		RealtimeHandler:    realtime.NewHandler(sentimentAnalyzer, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminJWTSecret:     cfg.AdminJWTSecret,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func buildRedisClient(cfg *appconfig.Config) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}
