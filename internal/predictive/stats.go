package predictive

import "math"

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// stddev is the population standard deviation.
func stddev(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	m := mean(series)
	var sum float64
	for _, v := range series {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(series)))
}

func clamp(v, lower, upper float64) float64 {
	return math.Min(upper, math.Max(lower, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
