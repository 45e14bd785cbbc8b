// Package predictive turns a user's self-reported wellness history into a
// burnout-risk score, 7-day anxiety and mood forecasts, and proactive
// threshold-triggered insights. The whole computation is pure and stateless:
// one call, one already-fetched batch, no I/O, safe to run concurrently.
package predictive

import "math"

// Trend labels for the anxiety forecast.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Trend labels for the combined mood/MHI forecast.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
)

// TrendPrediction is a 7-day forecast for a single channel.
type TrendPrediction struct {
	Trend           string    `json:"trend"`
	PredictedValues []float64 `json:"predictedValues"`
	Confidence      float64   `json:"confidence"`
}

// MoodTrendPrediction forecasts mood and Mental Health Index together under
// one combined trend label.
type MoodTrendPrediction struct {
	Trend         string    `json:"trend"`
	PredictedMood []float64 `json:"predictedMood"`
	PredictedMHI  []float64 `json:"predictedMHI"`
	Confidence    float64   `json:"confidence"`
}

// Result is the full output of one prediction run.
type Result struct {
	BurnoutRiskScore       float64             `json:"burnoutRiskScore"`
	AnxietyTrendPrediction TrendPrediction     `json:"anxietyTrendPrediction"`
	MoodTrendPrediction    MoodTrendPrediction `json:"moodTrendPrediction"`
	ProactiveInsights      []Insight           `json:"proactiveInsights"`
	Confidence             float64             `json:"confidence"`
}

// Analyzer holds the alert thresholds for prediction runs.
type Analyzer struct {
	declineThreshold float64 // MHI decline fraction that triggers an alert
	anxietyThreshold float64 // recent anxiety mean considered elevated
}

// NewAnalyzer creates an Analyzer with the standard thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		declineThreshold: 0.20,
		anxietyThreshold: 7,
	}
}

// Predict runs the four analysis stages over an oldest-to-newest batch of
// mood logs. voiceBiometrics and behavioralData are optional; nil batches
// simply omit their contributions. Malformed or missing fields inside
// individual entries never fail the run.
func (a *Analyzer) Predict(moodLogs, voiceBiometrics, behavioralData []Record) Result {
	moodSeries := extractSeries(moodLogs, moodChannel)
	mhiSeries := extractSeries(moodLogs, mhiChannel)
	anxietySeries := extractSeries(moodLogs, anxietyChannel)
	sleepSeries := extractSeries(moodLogs, sleepChannel)

	burnoutRisk := a.burnoutRisk(moodSeries, anxietySeries, sleepSeries, voiceBiometrics)

	return Result{
		BurnoutRiskScore:       round2(burnoutRisk),
		AnxietyTrendPrediction: a.predictAnxietyTrend(anxietySeries),
		MoodTrendPrediction:    a.predictMoodTrend(moodSeries, mhiSeries),
		ProactiveInsights:      a.generateInsights(mhiSeries, moodSeries, anxietySeries, sleepSeries, burnoutRisk),
		Confidence:             round4(overallConfidence(len(moodLogs), voiceBiometrics, behavioralData)),
	}
}

// predictAnxietyTrend forecasts the anxiety channel over the next 7 days.
func (a *Analyzer) predictAnxietyTrend(series []float64) TrendPrediction {
	if len(series) < 2 {
		return TrendPrediction{
			Trend:           TrendStable,
			PredictedValues: repeatValue(series[0]),
			Confidence:      0.3,
		}
	}

	trend := slope(series)

	label := TrendStable
	switch {
	case trend > 0.5:
		label = TrendIncreasing
	case trend < -0.5:
		label = TrendDecreasing
	}

	return TrendPrediction{
		Trend:           label,
		PredictedValues: forecast(series, trend, 0, 10),
		Confidence:      round4(predictionConfidence(series)),
	}
}

// predictMoodTrend forecasts mood and MHI over the next 7 days. The combined
// label averages the two slopes after rescaling MHI onto the mood range.
func (a *Analyzer) predictMoodTrend(moodSeries, mhiSeries []float64) MoodTrendPrediction {
	if len(moodSeries) < 2 {
		return MoodTrendPrediction{
			Trend:         TrendStable,
			PredictedMood: repeatValue(moodSeries[0]),
			PredictedMHI:  repeatValue(mhiSeries[0]),
			Confidence:    0.3,
		}
	}

	moodTrend := slope(moodSeries)
	mhiTrend := slope(mhiSeries)

	avgTrend := (moodTrend + mhiTrend/10) / 2
	label := TrendStable
	switch {
	case avgTrend > 0.3:
		label = TrendImproving
	case avgTrend < -0.3:
		label = TrendDeclining
	}

	return MoodTrendPrediction{
		Trend: label,
		// Self-reported mood bottoms out at 1, not 0.
		PredictedMood: forecast(moodSeries, moodTrend, 1, 10),
		PredictedMHI:  forecast(mhiSeries, mhiTrend, 0, 100),
		Confidence:    round4(predictionConfidence(moodSeries)),
	}
}

// overallConfidence reflects data volume plus multi-modal corroboration.
// It never reaches full certainty.
func overallConfidence(entryCount int, voiceBiometrics, behavioralData []Record) float64 {
	confidence := math.Min(0.7, float64(entryCount)/14)
	if len(voiceBiometrics) > 0 {
		confidence += 0.1
	}
	if len(behavioralData) > 0 {
		confidence += 0.1
	}
	return math.Min(0.95, confidence)
}
