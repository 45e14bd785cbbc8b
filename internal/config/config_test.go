package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REDIS_ADDR", "")
	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis disabled by default, got %s", cfg.RedisAddr)
	}
	if cfg.HistoryTTL != 7*24*time.Hour {
		t.Fatalf("expected default history TTL, got %s", cfg.HistoryTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected default CORS wildcard, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 10 {
		t.Fatalf("expected default rate limit, got %f", cfg.RateLimitPerSecond)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.mindfulme.io, https://admin.mindfulme.io")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("ADMIN_JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("PREDICTION_HISTORY_TTL", "48h")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.mindfulme.io" {
		t.Fatalf("expected CORS override, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 2.5 || cfg.RateLimitBurst != 5 {
		t.Fatalf("expected rate limit override, got %f/%d", cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}
	if !cfg.RedisTLS {
		t.Fatal("expected redis TLS override")
	}
	if cfg.HistoryTTL != 48*time.Hour {
		t.Fatalf("expected history TTL override, got %s", cfg.HistoryTTL)
	}
}
