package classifier

import (
	"strings"

	"loan-advisory-assistant/internal/model"
)

var positiveWords = []string{
	"thanks", "thank you", "great", "good", "excellent", "perfect",
	"awesome", "appreciate", "happy", "love",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "angry", "unhappy", "frustrated",
	"disappointed", "horrible", "worst", "hate", "unacceptable",
}

// detectSentiment tags the message tone from simple word lists.
// Whichever polarity has more hits wins; ties are neutral.
func detectSentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
