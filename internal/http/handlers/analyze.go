package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mindfulme/ml-service/internal/observability/metrics"
	"github.com/mindfulme/ml-service/internal/sentiment"
	"github.com/mindfulme/ml-service/pkg/logging"
)

// TextAnalysisRequest is the body for the text analysis endpoints.
type TextAnalysisRequest struct {
	Text string `json:"text"`
}

// BatchAnalysisResponse wraps per-text results; blank inputs yield null slots.
type BatchAnalysisResponse struct {
	Results []*sentiment.Analysis `json:"results"`
}

// AnalysisHandler serves the text sentiment endpoints.
type AnalysisHandler struct {
	analyzer *sentiment.Analyzer
	metrics  *metrics.AnalysisMetrics
	logger   *logging.Logger
}

// NewAnalysisHandler creates a sentiment analysis handler.
func NewAnalysisHandler(analyzer *sentiment.Analyzer, m *metrics.AnalysisMetrics, logger *logging.Logger) *AnalysisHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisHandler{analyzer: analyzer, metrics: m, logger: logger}
}

// AnalyzeText handles POST /analyze/text requests.
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TextAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode analysis request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Text content is required", http.StatusBadRequest)
		return
	}

	result := h.analyzer.Analyze(req.Text)
	h.metrics.ObserveAnalysisLatency("analyze_text", time.Since(start).Seconds())

	if result.IsCrisis {
		h.logger.Warn("crisis language detected in journal entry")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// AnalyzeRealtime handles POST /analyze/realtime requests. Very short
// fragments get a flat neutral response instead of a noisy score.
func (h *AnalysisHandler) AnalyzeRealtime(w http.ResponseWriter, r *http.Request) {
	var req TextAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(strings.TrimSpace(req.Text)) < 3 {
		_ = json.NewEncoder(w).Encode(sentiment.QuickAnalysis{
			SentimentScore: 0.5,
			Sentiment:      sentiment.LabelNeutral,
		})
		return
	}
	_ = json.NewEncoder(w).Encode(h.analyzer.QuickAnalyze(req.Text))
}

// AnalyzeBatch handles POST /analyze/batch requests.
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var texts []string
	if err := json.NewDecoder(r.Body).Decode(&texts); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results := make([]*sentiment.Analysis, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			results = append(results, nil)
			continue
		}
		analysis := h.analyzer.Analyze(text)
		results = append(results, &analysis)
	}

	h.metrics.ObserveAnalysisLatency("analyze_batch", time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(BatchAnalysisResponse{Results: results})
}
