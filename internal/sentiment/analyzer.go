// Package sentiment provides rule-based sentiment and emotion analysis for
// journal text. It is the deployment fallback when no external model service
// is configured: lexicon lookups only, no network calls, deterministic.
package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Sentiment labels.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// emotionOrder fixes iteration order so dominant-emotion selection is
// deterministic.
var emotionOrder = []string{"joy", "sadness", "anger", "fear", "surprise", "disgust"}

var emotionKeywords = map[string][]string{
	"joy":      {"happy", "joy", "excited", "wonderful", "great", "amazing", "love", "grateful", "blessed", "fantastic"},
	"sadness":  {"sad", "depressed", "unhappy", "miserable", "hopeless", "lonely", "grief", "sorrow", "crying", "tears"},
	"anger":    {"angry", "furious", "annoyed", "frustrated", "irritated", "mad", "rage", "hate", "resentful"},
	"fear":     {"afraid", "scared", "anxious", "worried", "nervous", "terrified", "panic", "dread", "uneasy"},
	"surprise": {"surprised", "shocked", "amazed", "astonished", "unexpected", "startled"},
	"disgust":  {"disgusted", "revolted", "sick", "repulsed", "awful", "terrible", "gross"},
}

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "happy",
	"joy", "love", "peaceful", "calm", "relaxed", "grateful", "blessed",
	"hopeful", "optimistic", "confident", "strong", "healthy", "better",
	"improved", "progress", "success", "achievement", "proud", "satisfied",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "sad", "depressed", "anxious",
	"worried", "stressed", "overwhelmed", "exhausted", "tired", "hopeless",
	"helpless", "worthless", "guilty", "ashamed", "angry", "frustrated",
	"lonely", "isolated", "scared", "afraid", "panic", "crisis", "suicidal",
)

// crisisKeywords trigger an immediate-attention flag on substring match.
var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end my life", "want to die",
	"self-harm", "cutting", "hurt myself", "no reason to live",
}

var stopWords = wordSet(
	"i", "me", "my", "myself", "we", "our", "ours", "you", "your",
	"he", "she", "it", "they", "them", "what", "which", "who",
	"this", "that", "these", "those", "am", "is", "are", "was",
	"were", "be", "been", "being", "have", "has", "had", "do",
	"does", "did", "will", "would", "could", "should", "may",
	"might", "must", "shall", "can", "need", "dare", "ought",
	"used", "a", "an", "the", "and", "but", "if", "or", "because",
	"as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up",
	"down", "in", "out", "on", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where",
	"why", "how", "all", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same",
	"so", "than", "too", "very", "just", "also", "now", "today",
	"feeling", "feel", "felt", "think", "thought", "really", "like",
)

var urlPattern = regexp.MustCompile(`http\S+|www\S+`)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Analysis is the full output for one piece of text.
type Analysis struct {
	SentimentScore float64            `json:"sentimentScore"`
	Sentiment      string             `json:"sentiment"`
	Emotions       map[string]float64 `json:"emotions"`
	KeyPhrases     []string           `json:"keyPhrases"`
	Insights       []string           `json:"insights"`
	IsCrisis       bool               `json:"isCrisis"`
}

// QuickAnalysis carries just the sentiment, for realtime typing feedback.
type QuickAnalysis struct {
	SentimentScore float64 `json:"sentimentScore"`
	Sentiment      string  `json:"sentiment"`
}

// Analyzer scores journal text against fixed lexicons.
type Analyzer struct{}

// NewAnalyzer creates a rule-based sentiment analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze performs full sentiment, emotion, key-phrase, and crisis analysis.
func (a *Analyzer) Analyze(text string) Analysis {
	cleaned := cleanText(text)
	isCrisis := containsCrisisLanguage(cleaned)
	score, label := scoreSentiment(cleaned)
	emotions := detectEmotions(cleaned)

	return Analysis{
		SentimentScore: score,
		Sentiment:      label,
		Emotions:       emotions,
		KeyPhrases:     extractKeyPhrases(cleaned),
		Insights:       buildInsights(label, emotions, isCrisis),
		IsCrisis:       isCrisis,
	}
}

// QuickAnalyze scores sentiment only.
func (a *Analyzer) QuickAnalyze(text string) QuickAnalysis {
	score, label := scoreSentiment(cleanText(text))
	return QuickAnalysis{SentimentScore: score, Sentiment: label}
}

func cleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func containsCrisisLanguage(text string) bool {
	for _, keyword := range crisisKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// scoreSentiment counts lexicon hits and normalizes their difference into
// [-1,1]. Text with no hits at all is neutral.
func scoreSentiment(text string) (float64, string) {
	var positive, negative int
	for _, word := range strings.Fields(text) {
		if _, ok := positiveWords[word]; ok {
			positive++
		}
		if _, ok := negativeWords[word]; ok {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0, LabelNeutral
	}

	score := float64(positive-negative) / float64(total)
	score = math.Round(score*10000) / 10000

	switch {
	case score > 0.2:
		return score, LabelPositive
	case score < -0.2:
		return score, LabelNegative
	default:
		return score, LabelNeutral
	}
}

// detectEmotions counts keyword hits per emotion class and normalizes into a
// distribution. With no hits every class gets an equal share.
func detectEmotions(text string) map[string]float64 {
	words := wordSet(strings.Fields(text)...)

	counts := make(map[string]int, len(emotionOrder))
	total := 0
	for _, emotion := range emotionOrder {
		matches := 0
		for _, keyword := range emotionKeywords[emotion] {
			if _, ok := words[keyword]; ok {
				matches++
			}
		}
		counts[emotion] = matches
		total += matches
	}

	emotions := make(map[string]float64, len(emotionOrder))
	for _, emotion := range emotionOrder {
		if total > 0 {
			emotions[emotion] = math.Round(float64(counts[emotion])/float64(total)*10000) / 10000
		} else {
			emotions[emotion] = math.Round(1.0/float64(len(emotionOrder))*10000) / 10000
		}
	}
	return emotions
}

// extractKeyPhrases pulls bigrams over stop-word-filtered tokens, then tops
// up with leading single words, capped at ten.
func extractKeyPhrases(text string) []string {
	var meaningful []string
	for _, word := range strings.Fields(text) {
		if _, stop := stopWords[word]; !stop && len(word) > 2 {
			meaningful = append(meaningful, word)
		}
	}

	phrases := []string{}
	seen := map[string]struct{}{}
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			phrases = append(phrases, p)
		}
	}

	for i := 0; i+1 < len(meaningful); i++ {
		add(fmt.Sprintf("%s %s", meaningful[i], meaningful[i+1]))
	}
	for i, word := range meaningful {
		if i >= 5 {
			break
		}
		add(word)
	}

	if len(phrases) > 10 {
		phrases = phrases[:10]
	}
	return phrases
}

var dominantEmotionInsights = map[string]string{
	"joy":      "Your joy is evident in your writing. Celebrate these positive moments!",
	"sadness":  "It's okay to feel sad. Consider talking to someone you trust about how you're feeling.",
	"anger":    "Anger is a natural emotion. Try some calming techniques like deep breathing.",
	"fear":     "Anxiety can be overwhelming. Grounding exercises might help you feel more centered.",
	"surprise": "Life can be full of unexpected moments. Take time to process your experiences.",
	"disgust":  "Strong reactions are valid. Consider what's triggering these feelings.",
}

func buildInsights(label string, emotions map[string]float64, isCrisis bool) []string {
	insights := []string{}

	if isCrisis {
		insights = append(insights, "Your entry contains concerning language. Please reach out to a mental health professional or crisis helpline if you're struggling.")
	}

	switch label {
	case LabelPositive:
		insights = append(insights, "Your writing reflects a positive mindset. Keep nurturing these positive thoughts!")
	case LabelNegative:
		insights = append(insights, "Your entry suggests you may be going through a difficult time. Remember, it's okay to seek support.")
	}

	dominant, best := "", 0.0
	for _, emotion := range emotionOrder {
		if emotions[emotion] > best {
			dominant, best = emotion, emotions[emotion]
		}
	}
	if best > 0.5 {
		if msg, ok := dominantEmotionInsights[dominant]; ok {
			insights = append(insights, msg)
		}
	}

	if len(insights) == 0 {
		insights = append(insights, "Thank you for journaling. Regular reflection is great for mental wellness.")
	}
	return insights
}
