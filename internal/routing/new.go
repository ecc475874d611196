package routing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"loan-advisory-assistant/internal/fallback"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
	"loan-advisory-assistant/pkg/log"
)

// Registry stores route definitions and their execution metrics.
type Registry interface {
	Register(r Route, override bool) error
	Unregister(id string) error
	Get(id string) (Route, bool)
	RoutesForIntent(t model.IntentType, enabledOnly bool) []Route
	Enable(id string) error
	Disable(id string) error
	UpdateMetrics(id string, success bool, latencyMs, confidence float64)
	AllowExecution(id string) bool
	Metrics(id string) (RouteMetrics, bool)
	AllMetrics() []RouteMetrics
	TopRoutes(n int, by TopRoutesBy) []RouteMetrics
	Summary() MetricsSummary
}

// routeEntry pairs a route with its rate limiter.
type routeEntry struct {
	route   Route
	limiter *rate.Limiter // nil when the route is unlimited
}

type registry struct {
	l log.Logger

	mu      sync.RWMutex
	routes  map[string]*routeEntry
	metrics map[string]*RouteMetrics
	now     func() time.Time
}

var _ Registry = (*registry)(nil)

// NewRegistry creates an empty route registry.
func NewRegistry(l log.Logger) *registry {
	return &registry{
		l:       l,
		routes:  make(map[string]*routeEntry),
		metrics: make(map[string]*RouteMetrics),
		now:     time.Now,
	}
}

// Router selects and executes a route for a classified intent.
type Router interface {
	Route(ctx context.Context, intent model.Intent, sess *session.IntentContext, authenticated bool) RouteResult
	RouteMulti(ctx context.Context, multi model.MultiIntentResult, sess *session.IntentContext, authenticated bool) []RouteResult
}

type router struct {
	l        log.Logger
	registry Registry
	fallback fallback.Handler
	sessions session.Manager

	// handlerTimeout caps one handler invocation. Zero means the caller's
	// context is the only bound.
	handlerTimeout time.Duration
}

var _ Router = (*router)(nil)

// NewRouter creates the intent router. The session manager may be nil when
// the caller never routes with session state.
func NewRouter(l log.Logger, reg Registry, fb fallback.Handler, sessions session.Manager, handlerTimeout time.Duration) *router {
	return &router{
		l:              l,
		registry:       reg,
		fallback:       fb,
		sessions:       sessions,
		handlerTimeout: handlerTimeout,
	}
}
