package routing

import (
	"sort"

	"golang.org/x/time/rate"

	"loan-advisory-assistant/internal/model"
)

// Register adds a route. An existing id is rejected unless override is set.
func (r *registry) Register(rt Route, override bool) error {
	if rt.ID == "" {
		return ErrEmptyRouteID
	}
	if rt.IntentType == "" {
		return ErrMissingIntent
	}
	if rt.Handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[rt.ID]; exists && !override {
		return ErrRouteExists
	}

	entry := &routeEntry{route: rt}
	if rt.RateLimitPerMin > 0 {
		perSec := rate.Limit(float64(rt.RateLimitPerMin) / 60.0)
		entry.limiter = rate.NewLimiter(perSec, rt.RateLimitPerMin)
	}
	r.routes[rt.ID] = entry

	if _, ok := r.metrics[rt.ID]; !ok {
		r.metrics[rt.ID] = &RouteMetrics{RouteID: rt.ID}
	}
	return nil
}

// Unregister removes a route and its limiter. Metrics are retained so past
// executions stay visible in summaries.
func (r *registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[id]; !ok {
		return ErrRouteNotFound
	}
	delete(r.routes, id)
	return nil
}

// Get returns a copy of the route definition.
func (r *registry) Get(id string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.routes[id]
	if !ok {
		return Route{}, false
	}
	return entry.route, true
}

// RoutesForIntent returns routes for the intent type sorted ascending by
// priority (ties break on id for determinism).
func (r *registry) RoutesForIntent(t model.IntentType, enabledOnly bool) []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Route
	for _, entry := range r.routes {
		if entry.route.IntentType != t {
			continue
		}
		if enabledOnly && !entry.route.Enabled {
			continue
		}
		out = append(out, entry.route)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Enable marks the route enabled.
func (r *registry) Enable(id string) error {
	return r.setEnabled(id, true)
}

// Disable marks the route disabled; it stays registered.
func (r *registry) Disable(id string) error {
	return r.setEnabled(id, false)
}

func (r *registry) setEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.routes[id]
	if !ok {
		return ErrRouteNotFound
	}
	entry.route.Enabled = enabled
	return nil
}

// AllowExecution consumes one rate-limit token for the route. Routes without
// a limiter always pass.
func (r *registry) AllowExecution(id string) bool {
	r.mu.RLock()
	entry, ok := r.routes[id]
	r.mu.RUnlock()
	if !ok || entry.limiter == nil {
		return true
	}
	return entry.limiter.Allow()
}
