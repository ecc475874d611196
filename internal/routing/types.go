package routing

import (
	"context"
	"time"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

// Handler executes one routed intent. Implementations receive the intent and
// a snapshot of the session (nil for context-free requests) and return the
// response payload for the caller.
type Handler interface {
	Execute(ctx context.Context, intent model.Intent, sess *session.IntentContext) (model.Values, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, intent model.Intent, sess *session.IntentContext) (model.Values, error)

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx context.Context, intent model.Intent, sess *session.IntentContext) (model.Values, error) {
	return f(ctx, intent, sess)
}

// Route statically binds an intent type to a handler. Mutable only via
// Enable/Disable after registration.
type Route struct {
	ID                  string           `json:"id"`
	IntentType          model.IntentType `json:"intent_type"`
	Handler             Handler          `json:"-"`
	Priority            int              `json:"priority"` // lower = tried first
	RequiresAuth        bool             `json:"requires_auth"`
	RequiredContextKeys []string         `json:"required_context_keys,omitempty"`
	MinConfidence       float64          `json:"min_confidence"`
	RateLimitPerMin     int              `json:"rate_limit_per_min,omitempty"` // 0 = unlimited
	Enabled             bool             `json:"enabled"`
	Tags                []string         `json:"tags,omitempty"`
}

// ErrorKind distinguishes why a route execution failed.
type ErrorKind string

const (
	ErrorKindNone     ErrorKind = ""
	ErrorKindHandler  ErrorKind = "handler_error"
	ErrorKindCanceled ErrorKind = "canceled"
	ErrorKindTimeout  ErrorKind = "timeout"
)

// FallbackRouteID is the sentinel route id used when no route qualified and
// the fallback handler produced the response.
const FallbackRouteID = "fallback"

// RouteResult is one execution outcome.
type RouteResult struct {
	RouteID     string           `json:"route_id"`
	Intent      model.Intent     `json:"intent"`
	Success     bool             `json:"success"`
	Response    model.Values     `json:"response,omitempty"`
	Error       string           `json:"error,omitempty"`
	ErrorKind   ErrorKind        `json:"error_kind,omitempty"`
	DurationMs  float64          `json:"duration_ms"`
	FollowUp    model.IntentType `json:"follow_up_intent,omitempty"`
	CompletedAt time.Time        `json:"completed_at"`
}

// RouteMetrics aggregates execution outcomes for one route id.
// Averages are maintained incrementally; no latency history is retained.
type RouteMetrics struct {
	RouteID              string    `json:"route_id"`
	TotalExecutions      int64     `json:"total_executions"`
	SuccessfulExecutions int64     `json:"successful_executions"`
	FailedExecutions     int64     `json:"failed_executions"`
	AvgLatencyMs         float64   `json:"avg_latency_ms"`
	MinLatencyMs         float64   `json:"min_latency_ms"`
	MaxLatencyMs         float64   `json:"max_latency_ms"`
	AvgConfidence        float64   `json:"avg_confidence"`
	LastExecutedAt       time.Time `json:"last_executed_at"`
	ExecutionsLastHour   int64     `json:"executions_last_hour"`
	ExecutionsLastDay    int64     `json:"executions_last_day"`

	hourWindowStart time.Time
	dayWindowStart  time.Time
}

// SuccessRate returns successes over total, 0 for an unused route.
func (m *RouteMetrics) SuccessRate() float64 {
	if m.TotalExecutions == 0 {
		return 0
	}
	return float64(m.SuccessfulExecutions) / float64(m.TotalExecutions)
}

// TopRoutesBy selects the ranking criterion for TopRoutes.
type TopRoutesBy string

const (
	TopByExecutions  TopRoutesBy = "executions"
	TopBySuccessRate TopRoutesBy = "success_rate"
	TopByAvgLatency  TopRoutesBy = "avg_latency"
)

// MetricsSummary is the registry-wide metrics rollup.
type MetricsSummary struct {
	TotalRoutes     int     `json:"total_routes"`
	EnabledRoutes   int     `json:"enabled_routes"`
	TotalExecutions int64   `json:"total_executions"`
	TotalSuccesses  int64   `json:"total_successes"`
	TotalFailures   int64   `json:"total_failures"`
	OverallRate     float64 `json:"overall_success_rate"`
}
