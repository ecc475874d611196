package fallback

import (
	"context"
	"fmt"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

const logPrefixHandle = "internal.fallback.Handle"

// How many recent intents the escalation check inspects, and how many of
// those must be low confidence to trigger escalation.
const (
	escalationWindow    = 5
	escalationThreshold = 3
	historyGuessWindow  = 3
)

// Handle selects a recovery strategy and executes it. From the caller's
// point of view this always succeeds; the result's Handled flag reports
// whether a strategy produced a response.
func (h *handler) Handle(ctx context.Context, intent model.Intent, sess *session.IntentContext) Result {
	strategy := h.selectStrategy(intent, sess)
	h.l.Infof(ctx, "%s: intent=%s level=%s strategy=%s", logPrefixHandle, intent.Type, intent.Level, strategy)

	switch strategy {
	case StrategyAskClarification:
		return h.askClarification(intent)
	case StrategyProvideOptions:
		return h.provideOptions()
	case StrategyUseHistory:
		return h.useHistory(sess)
	case StrategyEscalateToHuman:
		return h.escalate()
	case StrategyDefaultResponse:
		return h.defaultResponse()
	}

	// Unreachable for built-in strategies; a misconfigured custom default
	// still yields an unhandled result rather than an error.
	return Result{Strategy: strategy, Handled: false, Response: ""}
}

// selectStrategy applies the fixed priority order: very-low confidence,
// unknown intent, usable history, repeated low confidence, configured default.
func (h *handler) selectStrategy(intent model.Intent, sess *session.IntentContext) Strategy {
	if intent.Level == model.ConfidenceVeryLow {
		return StrategyAskClarification
	}
	if intent.Type == model.IntentUnknown {
		return StrategyProvideOptions
	}
	if sess != nil && len(sess.History) > 0 && h.cfg.HistoryEnabled {
		return StrategyUseHistory
	}
	if sess != nil && h.cfg.EscalationEnabled && h.lowConfidenceStreak(sess) {
		return StrategyEscalateToHuman
	}
	return h.cfg.DefaultStrategy
}

// lowConfidenceStreak reports whether at least escalationThreshold of the
// last escalationWindow intents were low or very-low confidence.
func (h *handler) lowConfidenceStreak(sess *session.IntentContext) bool {
	recent := sess.RecentIntents(escalationWindow)
	low := 0
	for _, in := range recent {
		if in.Level == model.ConfidenceLow || in.Level == model.ConfidenceVeryLow {
			low++
		}
	}
	return low >= escalationThreshold
}

func (h *handler) askClarification(intent model.Intent) Result {
	response := "I'm not quite sure what you're looking for. Could you rephrase that?"
	if intent.Type != model.IntentUnknown {
		response = fmt.Sprintf("It sounds like you might be asking about %s, but I'm not certain. Could you give me a bit more detail?", describeIntent(intent.Type))
	}
	return Result{
		Strategy: StrategyAskClarification,
		Handled:  true,
		Response: response,
		Options: []string{
			"Apply for a loan",
			"Check my loan status",
			"Review my credit history",
			"Value a property",
		},
	}
}

func (h *handler) provideOptions() Result {
	return Result{
		Strategy: StrategyProvideOptions,
		Handled:  true,
		Response: "Here's what I can help you with:",
		Options: []string{
			"Apply for a loan",
			"Check your loan application status",
			"Review your credit history",
			"Get a property valuation",
			"Assess your loan eligibility",
		},
	}
}

// useHistory inspects the most recent intents and proposes the most frequent
// type among them as a continuation guess.
func (h *handler) useHistory(sess *session.IntentContext) Result {
	recent := sess.RecentIntents(historyGuessWindow)

	counts := make(map[model.IntentType]int)
	var guess model.IntentType
	for _, in := range recent {
		if in.Type == model.IntentUnknown {
			continue
		}
		counts[in.Type]++
		if guess == "" || counts[in.Type] > counts[guess] {
			guess = in.Type
		}
	}

	if guess == "" {
		return h.provideOptions()
	}

	return Result{
		Strategy:        StrategyUseHistory,
		Handled:         true,
		Response:        fmt.Sprintf("Earlier we were talking about %s. Would you like to continue with that?", describeIntent(guess)),
		SuggestedIntent: guess,
		SuggestedActions: []string{
			fmt.Sprintf("Continue with %s", describeIntent(guess)),
			"Start something else",
		},
	}
}

func (h *handler) escalate() Result {
	return Result{
		Strategy: StrategyEscalateToHuman,
		Handled:  true,
		Response: "I'm having trouble understanding your requests. Let me connect you with one of our loan advisors.",
		SuggestedActions: []string{
			"Wait for an advisor",
			"Try rephrasing your request",
		},
	}
}

func (h *handler) defaultResponse() Result {
	return Result{
		Strategy: StrategyDefaultResponse,
		Handled:  true,
		Response: "I can help you with loan applications, credit checks, and property valuations. What would you like to do?",
	}
}

// describeIntent renders an intent type as user-facing text.
func describeIntent(t model.IntentType) string {
	switch t {
	case model.IntentLoanApplication:
		return "a loan application"
	case model.IntentLoanStatus:
		return "your loan status"
	case model.IntentCreditHistory:
		return "your credit history"
	case model.IntentPropertyValuation:
		return "a property valuation"
	case model.IntentRiskAssessment:
		return "your loan eligibility"
	case model.IntentComplaint:
		return "your complaint"
	case model.IntentQuestion:
		return "your question"
	default:
		return "that topic"
	}
}
