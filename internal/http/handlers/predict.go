package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindfulme/ml-service/internal/history"
	"github.com/mindfulme/ml-service/internal/observability/metrics"
	"github.com/mindfulme/ml-service/internal/predictive"
	"github.com/mindfulme/ml-service/pkg/logging"
)

// PredictionRequest is the body for POST /predict.
type PredictionRequest struct {
	UserID          string              `json:"userId"`
	MoodLogs        []predictive.Record `json:"moodLogs"`
	VoiceBiometrics []predictive.Record `json:"voiceBiometrics,omitempty"`
	BehavioralData  []predictive.Record `json:"behavioralData,omitempty"`
}

// PredictionHandler serves the predictive analysis endpoints.
type PredictionHandler struct {
	analyzer *predictive.Analyzer
	store    *history.Store
	metrics  *metrics.AnalysisMetrics
	logger   *logging.Logger
}

// NewPredictionHandler creates a prediction handler. store may be nil when
// Redis caching is disabled.
func NewPredictionHandler(analyzer *predictive.Analyzer, store *history.Store, m *metrics.AnalysisMetrics, logger *logging.Logger) *PredictionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionHandler{
		analyzer: analyzer,
		store:    store,
		metrics:  m,
		logger:   logger,
	}
}

// Predict handles POST /predict requests.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode prediction request", "error", err)
		h.metrics.ObservePrediction("rejected")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.MoodLogs) == 0 {
		h.metrics.ObservePrediction("rejected")
		http.Error(w, "Mood logs are required for prediction", http.StatusBadRequest)
		return
	}

	result := h.analyzer.Predict(req.MoodLogs, req.VoiceBiometrics, req.BehavioralData)

	h.metrics.ObservePrediction("ok")
	for _, insight := range result.ProactiveInsights {
		h.metrics.ObserveInsight(insight.Type, insight.Severity)
	}
	h.metrics.ObserveAnalysisLatency("predict", time.Since(start).Seconds())

	// Caching is best-effort; a storage hiccup never fails the prediction.
	if req.UserID != "" {
		if err := h.store.Save(r.Context(), req.UserID, result); err != nil {
			h.logger.Warn("failed to cache prediction", "error", err, "user_id", req.UserID)
		}
	}

	h.logger.Info("prediction generated",
		"user_id", req.UserID,
		"entries", len(req.MoodLogs),
		"risk", result.BurnoutRiskScore,
		"insights", len(result.ProactiveInsights),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

// LatestPrediction handles GET /predictions/{userID} requests.
func (h *PredictionHandler) LatestPrediction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "missing userID", http.StatusBadRequest)
		return
	}

	snapshot, err := h.store.Latest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "no prediction found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to read cached prediction", "error", err, "user_id", userID)
		http.Error(w, "failed to read prediction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snapshot)
}

// PurgePrediction handles DELETE /admin/users/{userID}/prediction requests.
func (h *PredictionHandler) PurgePrediction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "missing userID", http.StatusBadRequest)
		return
	}

	if err := h.store.Purge(r.Context(), userID); err != nil {
		h.logger.Error("failed to purge prediction", "error", err, "user_id", userID)
		http.Error(w, "failed to purge prediction", http.StatusInternalServerError)
		return
	}

	h.logger.Info("prediction purged", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
