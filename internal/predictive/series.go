package predictive

import (
	"encoding/json"
	"strconv"
)

// Record is one loosely-validated upstream log entry. Clients have shipped
// both camelCase and snake_case payloads over time, so field access goes
// through an alias table instead of a typed struct.
type Record = map[string]any

// channel describes one numeric time series extractable from mood logs.
type channel struct {
	aliases  []string
	fallback float64
}

var (
	moodChannel    = channel{aliases: []string{"moodScore", "mood_score"}, fallback: 5.0}
	mhiChannel     = channel{aliases: []string{"mentalHealthIndex", "mental_health_index"}, fallback: 50.0}
	anxietyChannel = channel{aliases: []string{"anxietyLevel", "anxiety_level"}, fallback: 5.0}
	sleepChannel   = channel{aliases: []string{"sleepQuality", "sleep_quality"}, fallback: 5.0}

	flatAffectAliases = []string{"flatAffectScore", "flat_affect_score"}
)

// extractSeries pulls one channel out of the logs in order. Entries missing
// the field (or carrying a non-numeric value) are skipped rather than
// zero-filled. An entirely absent channel yields a single fallback sample so
// downstream math never sees an empty series.
func extractSeries(logs []Record, ch channel) []float64 {
	series := make([]float64, 0, len(logs))
	for _, rec := range logs {
		if v, ok := floatField(rec, ch.aliases); ok {
			series = append(series, v)
		}
	}
	if len(series) == 0 {
		return []float64{ch.fallback}
	}
	return series
}

// floatField returns the first alias present in rec, coerced to float64.
func floatField(rec Record, aliases []string) (float64, bool) {
	for _, key := range aliases {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if f, ok := coerceFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
