package fallback

import (
	"context"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
	"loan-advisory-assistant/pkg/log"
)

// Handler picks and executes a recovery strategy when routing fails.
type Handler interface {
	Handle(ctx context.Context, intent model.Intent, sess *session.IntentContext) Result
}

type handler struct {
	l   log.Logger
	cfg Config
}

var _ Handler = (*handler)(nil)

// New creates a fallback handler. An empty default strategy falls back to
// asking for clarification.
func New(l log.Logger, cfg Config) *handler {
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = StrategyAskClarification
	}
	return &handler{l: l, cfg: cfg}
}
