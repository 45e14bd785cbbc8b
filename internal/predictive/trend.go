package predictive

import "math"

// forecastHorizon is the number of days every trend prediction covers.
const forecastHorizon = 7

// slope fits an ordinary-least-squares line of value against integer index
// and returns its slope per day. Series shorter than two points carry no
// trend information and return 0.
func slope(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := float64(n)*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denominator
}

// forecast extrapolates linearly from the last observation, clamping every
// step into the channel's valid range.
func forecast(series []float64, trend, lower, upper float64) []float64 {
	last := series[len(series)-1]
	out := make([]float64, forecastHorizon)
	for i := range out {
		out[i] = round2(clamp(last+trend*float64(i+1), lower, upper))
	}
	return out
}

// repeatValue fills the horizon with a single known value, used when the
// series is too short to fit a line.
func repeatValue(v float64) []float64 {
	out := make([]float64, forecastHorizon)
	for i := range out {
		out[i] = v
	}
	return out
}

// predictionConfidence scores how much a forecast can be trusted. Volume
// saturates at 14 observations; consistency penalizes a high coefficient of
// variation. Series under three points get a constant 0.3 floor.
func predictionConfidence(series []float64) float64 {
	if len(series) < 3 {
		return 0.3
	}

	dataFactor := math.Min(1, float64(len(series))/14)

	varianceFactor := 0.5
	if m := mean(series); m > 0 {
		cv := stddev(series) / m
		varianceFactor = math.Max(0.3, 1-cv)
	}

	confidence := dataFactor*0.6 + varianceFactor*0.4
	return math.Min(0.95, math.Max(0.3, confidence))
}
