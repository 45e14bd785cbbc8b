package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mindfulme/ml-service/internal/http/handlers"
	httpmiddleware "github.com/mindfulme/ml-service/internal/http/middleware"
	"github.com/mindfulme/ml-service/internal/realtime"
	"github.com/mindfulme/ml-service/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	HealthHandler      *handlers.HealthHandler
	PredictionHandler  *handlers.PredictionHandler
	AnalysisHandler    *handlers.AnalysisHandler
	RealtimeHandler    *realtime.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	AdminJWTSecret     string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.HealthHandler.HealthCheck)

		public.Post("/predict", cfg.PredictionHandler.Predict)
		public.Get("/predictions/{userID}", cfg.PredictionHandler.LatestPrediction)

		public.Route("/analyze", func(r chi.Router) {
			r.Post("/text", cfg.AnalysisHandler.AnalyzeText)
			r.Post("/realtime", cfg.AnalysisHandler.AnalyzeRealtime)
			r.Post("/batch", cfg.AnalysisHandler.AnalyzeBatch)
		})

		if cfg.RealtimeHandler != nil {
			public.Get("/ws/journal", cfg.RealtimeHandler.HandleWebSocket)
		}

		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin endpoints require an HMAC-signed admin token.
	if cfg.AdminJWTSecret != "" {
		r.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret, httpmiddleware.ScopePurgePredictions))
			admin.Delete("/admin/users/{userID}/prediction", cfg.PredictionHandler.PurgePrediction)
		})
	}

	return r
}
