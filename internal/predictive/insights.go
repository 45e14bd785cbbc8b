package predictive

import (
	"fmt"
	"math"
)

// Insight severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Insight types.
const (
	InsightMHIDecline      = "mhi_decline"
	InsightBurnoutRisk     = "burnout_risk"
	InsightAnxietyElevated = "anxiety_elevated"
	InsightSleepQuality    = "sleep_quality"
	InsightPositiveTrend   = "positive_trend"
)

// Insight is a single proactive wellness alert.
type Insight struct {
	Type           string  `json:"type"`
	Severity       string  `json:"severity"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
	TriggerValue   float64 `json:"triggerValue"`
}

// generateInsights evaluates the alert rules in a fixed order against the
// extracted series and the aggregate risk score. The order of the returned
// list is a stable contract; rules do not short-circuit each other.
func (a *Analyzer) generateInsights(mhi, mood, anxiety, sleep []float64, burnoutRisk float64) []Insight {
	insights := []Insight{}

	// Mental Health Index decline: the last three samples against the mean
	// of everything before them.
	if len(mhi) >= 3 {
		recentAvg := mean(mhi[len(mhi)-3:])
		olderAvg := mhi[0]
		if len(mhi) > 3 {
			olderAvg = mean(mhi[:len(mhi)-3])
		}

		if olderAvg > 0 {
			decline := (olderAvg - recentAvg) / olderAvg
			if decline >= a.declineThreshold {
				insights = append(insights, Insight{
					Type:           InsightMHIDecline,
					Severity:       SeverityHigh,
					Message:        fmt.Sprintf("Your Mental Health Index has declined by %.0f%% over the past few days. Consider reaching out to a mental health professional.", math.Round(decline*100)),
					Recommendation: "Schedule a check-in with your therapist or counselor.",
					TriggerValue:   round1(decline * 100),
				})
			}
		}
	}

	// Burnout risk: a single alert at most, high above 7, medium above 5.
	if burnoutRisk >= 7 {
		insights = append(insights, Insight{
			Type:           InsightBurnoutRisk,
			Severity:       SeverityHigh,
			Message:        "Your burnout risk is elevated. It's important to prioritize self-care.",
			Recommendation: "Take breaks, practice relaxation techniques, and ensure adequate sleep.",
			TriggerValue:   round1(burnoutRisk),
		})
	} else if burnoutRisk >= 5 {
		insights = append(insights, Insight{
			Type:           InsightBurnoutRisk,
			Severity:       SeverityMedium,
			Message:        "You may be at moderate risk for burnout. Monitor your stress levels.",
			Recommendation: "Consider incorporating stress-reduction activities into your routine.",
			TriggerValue:   round1(burnoutRisk),
		})
	}

	// Elevated anxiety over the last three samples.
	if len(anxiety) >= 3 {
		recentAnxiety := mean(anxiety[len(anxiety)-3:])
		if recentAnxiety >= a.anxietyThreshold {
			severity := SeverityMedium
			if recentAnxiety >= 8 {
				severity = SeverityHigh
			}
			insights = append(insights, Insight{
				Type:           InsightAnxietyElevated,
				Severity:       severity,
				Message:        fmt.Sprintf("Your anxiety levels have been elevated (avg: %.1f/10).", round1(recentAnxiety)),
				Recommendation: "Try breathing exercises, meditation, or speak with a professional.",
				TriggerValue:   round1(recentAnxiety),
			})
		}
	}

	// Poor sleep over the last three samples.
	if len(sleep) >= 3 {
		recentSleep := mean(sleep[len(sleep)-3:])
		if recentSleep < 5 {
			insights = append(insights, Insight{
				Type:           InsightSleepQuality,
				Severity:       SeverityMedium,
				Message:        fmt.Sprintf("Your sleep quality has been below average (avg: %.1f/10).", round1(recentSleep)),
				Recommendation: "Establish a consistent sleep schedule and limit screen time before bed.",
				TriggerValue:   round1(recentSleep),
			})
		}
	}

	// Sustained mood improvement. The one rule not gated by a risk signal.
	if len(mood) >= 5 {
		if trend := slope(mood); trend > 0.5 {
			insights = append(insights, Insight{
				Type:           InsightPositiveTrend,
				Severity:       SeverityLow,
				Message:        "Great progress! Your mood has been improving consistently.",
				Recommendation: "Keep up the positive habits that are working for you.",
				TriggerValue:   round2(trend),
			})
		}
	}

	return insights
}
