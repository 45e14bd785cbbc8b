package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mindfulme/ml-service/internal/history"
	"github.com/mindfulme/ml-service/internal/http/handlers"
	httpmiddleware "github.com/mindfulme/ml-service/internal/http/middleware"
	"github.com/mindfulme/ml-service/internal/observability/metrics"
	"github.com/mindfulme/ml-service/internal/predictive"
	"github.com/mindfulme/ml-service/internal/realtime"
	"github.com/mindfulme/ml-service/internal/sentiment"
	"github.com/mindfulme/ml-service/pkg/logging"
)

const testAdminSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := history.NewStore(client, time.Hour)
	logger := logging.New("error", "")
	reg := prometheus.NewRegistry()
	m := metrics.NewAnalysisMetrics(reg)

	return New(&Config{
		Logger:             logger,
		HealthHandler:      handlers.NewHealthHandler("test"),
		PredictionHandler:  handlers.NewPredictionHandler(predictive.NewAnalyzer(), store, m, logger),
		AnalysisHandler:    handlers.NewAnalysisHandler(sentiment.NewAnalyzer(), m, logger),
		RealtimeHandler:    realtime.NewHandler(sentiment.NewAnalyzer(), logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
		AdminJWTSecret:     testAdminSecret,
	})
}

func signedAdminToken(t *testing.T, secret, scope string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, httpmiddleware.AdminClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    httpmiddleware.AdminIssuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestPredictRoute(t *testing.T) {
	r := newTestRouter(t)

	body := `{"userId":"u1","moodLogs":[{"moodScore":5,"mentalHealthIndex":50,"anxietyLevel":5,"sleepQuality":5}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeRoutes(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		path string
		body string
	}{
		{"/analyze/text", `{"text":"I feel great today"}`},
		{"/analyze/realtime", `{"text":"I feel great today"}`},
		{"/analyze/batch", `["I feel great today"]`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tc.path, rec.Code)
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestAdminPurgeRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/users/u1/prediction", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAdminPurgeWithToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u1/prediction", nil)
	req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, testAdminSecret, httpmiddleware.ScopePurgePredictions))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminPurgeRejectsWrongScope(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u1/prediction", nil)
	req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, testAdminSecret, "metrics:read"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestAdminPurgeRejectsWrongSecret(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u1/prediction", nil)
	req.Header.Set("Authorization", "Bearer "+signedAdminToken(t, "wrong-secret", httpmiddleware.ScopePurgePredictions))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
