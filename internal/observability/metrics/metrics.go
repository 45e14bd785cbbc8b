package metrics

import "github.com/prometheus/client_golang/prometheus"

// AnalysisMetrics exposes counters/histograms for the analysis endpoints.
type AnalysisMetrics struct {
	predictionsTotal *prometheus.CounterVec
	insightsTotal    *prometheus.CounterVec
	analysisLatency  *prometheus.HistogramVec
}

func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindfulme",
			Subsystem: "ml",
			Name:      "predictions_total",
			Help:      "Total prediction requests",
		}, []string{"status"}),
		insightsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindfulme",
			Subsystem: "ml",
			Name:      "insights_emitted_total",
			Help:      "Total proactive insights emitted",
		}, []string{"type", "severity"}),
		analysisLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mindfulme",
			Subsystem: "ml",
			Name:      "analysis_latency_seconds",
			Help:      "Latency of analysis endpoint processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.predictionsTotal, m.insightsTotal, m.analysisLatency)
	return m
}

func (m *AnalysisMetrics) ObservePrediction(status string) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(status).Inc()
}

func (m *AnalysisMetrics) ObserveInsight(insightType, severity string) {
	if m == nil {
		return
	}
	m.insightsTotal.WithLabelValues(insightType, severity).Inc()
}

func (m *AnalysisMetrics) ObserveAnalysisLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.analysisLatency.WithLabelValues(endpoint).Observe(seconds)
}
