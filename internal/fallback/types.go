package fallback

import "loan-advisory-assistant/internal/model"

// Strategy is one of the recovery behaviors used when routing fails or
// confidence is too low.
type Strategy string

const (
	StrategyAskClarification Strategy = "ask_clarification"
	StrategyProvideOptions   Strategy = "provide_options"
	StrategyUseHistory       Strategy = "use_history"
	StrategyEscalateToHuman  Strategy = "escalate_to_human"
	StrategyDefaultResponse  Strategy = "default_response"
)

// Result is the outcome of one fallback handling. Handled is true for every
// built-in strategy; the call itself never fails.
type Result struct {
	Strategy         Strategy         `json:"strategy"`
	Handled          bool             `json:"handled"`
	Response         string           `json:"response"`
	Options          []string         `json:"options,omitempty"`
	SuggestedIntent  model.IntentType `json:"suggested_intent,omitempty"`
	SuggestedActions []string         `json:"suggested_actions,omitempty"`
}

// Config tunes strategy selection.
type Config struct {
	DefaultStrategy   Strategy
	HistoryEnabled    bool
	EscalationEnabled bool
}
