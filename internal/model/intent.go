package model

import "time"

// IntentType is the closed set of conversational intents the assistant understands.
type IntentType string

const (
	IntentGreeting          IntentType = "GREETING"
	IntentFarewell          IntentType = "FAREWELL"
	IntentQuestion          IntentType = "QUESTION"
	IntentHelp              IntentType = "HELP"
	IntentLoanApplication   IntentType = "LOAN_APPLICATION"
	IntentLoanStatus        IntentType = "LOAN_STATUS"
	IntentCreditHistory     IntentType = "CREDIT_HISTORY"
	IntentPropertyValuation IntentType = "PROPERTY_VALUATION"
	IntentRiskAssessment    IntentType = "RISK_ASSESSMENT"
	IntentComplaint         IntentType = "COMPLAINT"
	IntentUnknown           IntentType = "UNKNOWN"
)

// AllIntentTypes lists every routable intent type (UNKNOWN included).
func AllIntentTypes() []IntentType {
	return []IntentType{
		IntentGreeting, IntentFarewell, IntentQuestion, IntentHelp,
		IntentLoanApplication, IntentLoanStatus, IntentCreditHistory,
		IntentPropertyValuation, IntentRiskAssessment, IntentComplaint,
		IntentUnknown,
	}
}

// ConfidenceLevel buckets a numeric confidence score.
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
)

// LevelForConfidence maps a score in [0,1] to its bucket.
// Bucket thresholds are fixed: ≥0.9, ≥0.75, ≥0.5, ≥0.3, below.
func LevelForConfidence(score float64) ConfidenceLevel {
	switch {
	case score >= 0.9:
		return ConfidenceVeryHigh
	case score >= 0.75:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	case score >= 0.3:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// Sentiment is the detected tone of a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Intent is a single classification result. Immutable once produced by the
// classifier; other components reference it, never rewrite it.
type Intent struct {
	ID         string          `json:"id"`
	Type       IntentType      `json:"type"`
	Confidence float64         `json:"confidence"`
	Level      ConfidenceLevel `json:"confidence_level"`
	RawText    string          `json:"raw_text"`
	Entities   Values          `json:"entities,omitempty"`
	Parameters Values          `json:"parameters,omitempty"`
	Language   string          `json:"language,omitempty"`
	Sentiment  Sentiment       `json:"sentiment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MultiIntentResult holds one primary intent plus ranked secondaries.
// ExecutionOrder lists intent ids in the order the router must execute them.
type MultiIntentResult struct {
	Primary               Intent   `json:"primary"`
	Secondary             []Intent `json:"secondary,omitempty"`
	ExecutionOrder        []string `json:"execution_order"`
	RequiresClarification bool     `json:"requires_clarification"`
}

// Intents returns primary plus secondaries in execution order.
func (m MultiIntentResult) Intents() []Intent {
	out := make([]Intent, 0, 1+len(m.Secondary))
	out = append(out, m.Primary)
	out = append(out, m.Secondary...)
	return out
}
