package classifier

import (
	"regexp"

	"loan-advisory-assistant/internal/model"
)

// SignalWeights are the per-intent weights for the three match signals.
// They should sum to roughly 1.0; the final score is capped at 1.0 anyway.
type SignalWeights struct {
	Keyword float64 `json:"keyword"`
	Phrase  float64 `json:"phrase"`
	Regex   float64 `json:"regex"`
}

// IntentPattern is the static matching rule set for one intent type.
// Loaded once at startup; treated as read-only by the scoring path.
type IntentPattern struct {
	Type     model.IntentType
	Keywords []string
	Phrases  []string
	Regexes  []string
	Weights  SignalWeights

	// EntityPatterns maps entity name to an extraction regex. When the regex
	// has a capture group the first group is taken, otherwise the whole match.
	EntityPatterns map[string]string
}

// compiledPattern is an IntentPattern with its regexes compiled.
type compiledPattern struct {
	src      IntentPattern
	regexes  []*regexp.Regexp
	entities map[string]*regexp.Regexp
}

// SessionSnapshot is the read-only view of session state the classifier uses
// for context bonuses. It is a snapshot of the context as it stood before the
// current turn was routed; bonuses intentionally reflect the previous turn.
type SessionSnapshot struct {
	CurrentTopic    model.IntentType
	FrequentIntents []model.IntentType
	Language        string
}

// Config tunes classification thresholds and the result cache.
type Config struct {
	MinConfidence        float64 // single-intent floor; below it → UNKNOWN
	MultiIntentThreshold float64 // score needed to appear in a multi result
	ClarificationMargin  float64 // top-two gap under which clarification is flagged
	DefaultLanguage      string
	Timezone             string // IANA name used to resolve relative dates
	CacheSize            int
	CacheTTLSeconds      int
}
