package predictive

import "math"

// burnoutRisk combines mood, anxiety, sleep, mood trajectory, and optional
// voice flat-affect into a 0-10 score. Each term is normalized and weighted
// independently so its contribution stays interpretable in isolation.
func (a *Analyzer) burnoutRisk(mood, anxiety, sleep []float64, voiceBiometrics []Record) float64 {
	var risk float64

	// Low mood raises risk. Weight: 3.
	risk += (10 - mean(mood)) / 10 * 3

	// Elevated anxiety raises risk. Weight: 3.
	risk += mean(anxiety) / 10 * 3

	// Poor sleep raises risk. Weight: 2.
	risk += (10 - mean(sleep)) / 10 * 2

	// A worsening mood trajectory is penalized on top of the absolute
	// levels. Flat or improving trends contribute nothing. Weight: 2.
	if len(mood) >= 3 {
		if trend := slope(mood); trend < 0 {
			risk += math.Abs(trend) * 2
		}
	}

	// Flat affect in voice recordings, when supplied. Weight: 2.
	if len(voiceBiometrics) > 0 {
		var total float64
		for _, rec := range voiceBiometrics {
			score, _ := floatField(rec, flatAffectAliases)
			total += score
		}
		risk += total / float64(len(voiceBiometrics)) * 2
	}

	return clamp(risk, 0, 10)
}
