package intent

import (
	"context"

	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/internal/session"
)

// UseCase is the programmatic contract of the intent routing subsystem,
// consumed by the HTTP delivery layer.
type UseCase interface {
	// Classify classifies text without routing it. A session id enables
	// context bonuses; the session itself is not mutated. Total: any string
	// input yields a result, empty text degrades to UNKNOWN.
	Classify(ctx context.Context, sc model.Scope, input ClassifyInput) ClassifyOutput

	// Route classifies text and dispatches it end to end: session lookup or
	// creation, route execution (or fallback), session update, history
	// tracking. Total: failures surface inside the route results.
	Route(ctx context.Context, sc model.Scope, input RouteInput) RouteOutput

	// Route administration.
	RegisterRoute(ctx context.Context, route routing.Route, override bool) error
	EnableRoute(ctx context.Context, id string) error
	DisableRoute(ctx context.Context, id string) error

	// Session lifecycle.
	CreateSession(ctx context.Context, sc model.Scope, input CreateSessionInput) *session.IntentContext
	GetSession(ctx context.Context, id string) (*session.IntentContext, bool)
	EndSession(ctx context.Context, id string) bool

	// History and analytics.
	GetHistory(ctx context.Context, input HistoryInput) []history.TrackedIntent
	GetFrequency(ctx context.Context, input HistoryInput) map[model.IntentType]int64
	GetTopIntents(ctx context.Context, n int, input HistoryInput) []history.TypeCount
	GetConfidenceStats(ctx context.Context, input HistoryInput) history.ConfidenceStats
	GetHourlyVolume(ctx context.Context, input HistoryInput) map[int]int64
	GetUserPatterns(ctx context.Context, userID string) (history.UserPatterns, bool)
	GetHistorySummary(ctx context.Context) history.Summary

	// Route metrics.
	GetRouteMetrics(ctx context.Context, routeID string) (routing.RouteMetrics, bool)
	GetMetricsSummary(ctx context.Context) routing.MetricsSummary
	GetTopRoutes(ctx context.Context, n int, by routing.TopRoutesBy) []routing.RouteMetrics
}
