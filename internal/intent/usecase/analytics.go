package usecase

import (
	"context"

	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
)

func (uc *implUseCase) GetHistory(ctx context.Context, input intent.HistoryInput) []history.TrackedIntent {
	return uc.tracker.History(input.ToFilter())
}

func (uc *implUseCase) GetFrequency(ctx context.Context, input intent.HistoryInput) map[model.IntentType]int64 {
	return uc.tracker.Frequency(input.ToFilter())
}

func (uc *implUseCase) GetTopIntents(ctx context.Context, n int, input intent.HistoryInput) []history.TypeCount {
	return uc.tracker.TopIntents(n, input.ToFilter())
}

func (uc *implUseCase) GetConfidenceStats(ctx context.Context, input intent.HistoryInput) history.ConfidenceStats {
	return uc.tracker.ConfidenceStats(input.ToFilter())
}

func (uc *implUseCase) GetHourlyVolume(ctx context.Context, input intent.HistoryInput) map[int]int64 {
	return uc.tracker.HourlyVolume(input.ToFilter())
}

func (uc *implUseCase) GetUserPatterns(ctx context.Context, userID string) (history.UserPatterns, bool) {
	return uc.tracker.UserPatterns(userID)
}

func (uc *implUseCase) GetHistorySummary(ctx context.Context) history.Summary {
	return uc.tracker.Summary()
}

func (uc *implUseCase) GetRouteMetrics(ctx context.Context, routeID string) (routing.RouteMetrics, bool) {
	return uc.registry.Metrics(routeID)
}

func (uc *implUseCase) GetMetricsSummary(ctx context.Context) routing.MetricsSummary {
	return uc.registry.Summary()
}

func (uc *implUseCase) GetTopRoutes(ctx context.Context, n int, by routing.TopRoutesBy) []routing.RouteMetrics {
	return uc.registry.TopRoutes(n, by)
}
