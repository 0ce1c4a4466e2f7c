package feedback

import (
	"strings"

	domain "github.com/RHD-founder/thukpa/pkg/domain/feedback"
)

var positiveWords = []string{
	"great", "good", "excellent", "amazing", "delicious", "tasty",
	"friendly", "love", "loved", "best", "wonderful", "fantastic",
	"perfect", "fresh", "recommend",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "slow", "rude",
	"cold", "worst", "dirty", "disappointing", "bland", "stale",
	"overpriced", "never again",
}

// AnalyzeSentiment classifies a submission. A rating dominates when present;
// otherwise the comment text is scored against the keyword lists.
func AnalyzeSentiment(rating *int, comments string) domain.Sentiment {
	if rating != nil {
		switch {
		case *rating >= 4:
			return domain.SentimentPositive
		case *rating <= 2:
			return domain.SentimentNegative
		}
	}

	text := strings.ToLower(comments)
	score := 0
	for _, word := range positiveWords {
		if strings.Contains(text, word) {
			score++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(text, word) {
			score--
		}
	}

	switch {
	case score > 0:
		return domain.SentimentPositive
	case score < 0:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
