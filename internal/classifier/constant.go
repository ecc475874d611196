package classifier

// Log prefixes
const (
	LogPrefixClassify      = "internal.classifier.Classify"
	LogPrefixClassifyMulti = "internal.classifier.ClassifyMulti"
)

// Default thresholds. MinConfidence is the single-intent floor, below which
// the result degrades to UNKNOWN while keeping the raw score.
const (
	DefaultMinConfidence        = 0.3
	DefaultMultiIntentThreshold = 0.6
	DefaultClarificationMargin  = 0.15
	DefaultLanguage             = "en"
	DefaultTimezone             = "UTC"
)

// Default signal weights: keyword 30%, exact phrase 50%, regex 20%.
const (
	DefaultKeywordWeight = 0.30
	DefaultPhraseWeight  = 0.50
	DefaultRegexWeight   = 0.20
)

// Context bonuses, added before the 1.0 cap.
const (
	TopicContinuityBonus = 0.10
	FrequentIntentBonus  = 0.05
)

// Signal saturation counts: a signal reaches full strength once this many of
// its patterns hit. Short utterances like "Hello" can then still produce a
// high-confidence match.
const (
	keywordSaturation = 2
	phraseSaturation  = 1
	regexSaturation   = 1
)

// Result cache defaults. Only context-free classifications are cached.
const (
	DefaultCacheSize       = 512
	DefaultCacheTTLSeconds = 300
)
