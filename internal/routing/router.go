package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

// Log prefixes
const (
	logPrefixRoute      = "internal.routing.Route"
	logPrefixRouteMulti = "internal.routing.RouteMulti"
)

// Route selects the first eligible route for the intent, in priority order,
// and executes its handler. Ineligible candidates (confidence floor, auth,
// missing context keys, rate limit) are skipped, not errors. When no route
// qualifies the fallback handler produces the response.
func (r *router) Route(ctx context.Context, intent model.Intent, sess *session.IntentContext, authenticated bool) RouteResult {
	candidates := r.registry.RoutesForIntent(intent.Type, true)

	for _, route := range candidates {
		if intent.Confidence < route.MinConfidence {
			continue
		}
		if route.RequiresAuth && !authenticated {
			continue
		}
		if !hasRequiredKeys(route.RequiredContextKeys, sess) {
			continue
		}
		if !r.registry.AllowExecution(route.ID) {
			r.l.Warnf(ctx, "%s: route %s rate limited, skipping", logPrefixRoute, route.ID)
			continue
		}

		result := r.execute(ctx, route, intent, sess)
		r.updateSession(ctx, sess, intent, result)
		return result
	}

	r.l.Infof(ctx, "%s: no eligible route for %s (%.2f), falling back", logPrefixRoute, intent.Type, intent.Confidence)
	result := r.runFallback(ctx, intent, sess)
	r.updateSession(ctx, sess, intent, result)
	return result
}

// RouteMulti executes each intent strictly in the classifier's execution
// order. The session is re-read between steps so later intents observe
// context mutations left by earlier ones.
func (r *router) RouteMulti(ctx context.Context, multi model.MultiIntentResult, sess *session.IntentContext, authenticated bool) []RouteResult {
	byID := make(map[string]model.Intent)
	for _, in := range multi.Intents() {
		byID[in.ID] = in
	}

	results := make([]RouteResult, 0, len(multi.ExecutionOrder))
	for _, id := range multi.ExecutionOrder {
		in, ok := byID[id]
		if !ok {
			r.l.Warnf(ctx, "%s: execution order references unknown intent id %s", logPrefixRouteMulti, id)
			continue
		}

		results = append(results, r.Route(ctx, in, sess, authenticated))

		if sess != nil && r.sessions != nil {
			if updated, ok := r.sessions.GetSession(ctx, sess.SessionID); ok {
				sess = updated
			}
		}
	}
	return results
}

// execute runs one handler, converting any failure (error, panic,
// cancellation) into a failed RouteResult. Metrics are updated for every
// attempt.
func (r *router) execute(ctx context.Context, route Route, intent model.Intent, sess *session.IntentContext) RouteResult {
	start := time.Now()

	execCtx := ctx
	if r.handlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.handlerTimeout)
		defer cancel()
	}

	response, err := invokeHandler(execCtx, route.Handler, intent, sess)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	result := RouteResult{
		RouteID:     route.ID,
		Intent:      intent,
		DurationMs:  elapsed,
		CompletedAt: time.Now().UTC(),
	}

	if err != nil {
		result.Success = false
		result.Error = err.Error()
		result.ErrorKind = classifyError(err)
		r.l.Errorf(ctx, "%s: route %s failed after %.1fms: %v", logPrefixRoute, route.ID, elapsed, err)
	} else {
		result.Success = true
		result.Response = response
		if follow, ok := response["follow_up_intent"]; ok {
			if s, isStr := follow.AsString(); isStr {
				result.FollowUp = model.IntentType(s)
			}
		}
	}

	r.registry.UpdateMetrics(route.ID, result.Success, elapsed, intent.Confidence)
	return result
}

// invokeHandler calls the handler and converts a panic into an error, so a
// misbehaving handler can never take down the router.
func invokeHandler(ctx context.Context, h Handler, intent model.Intent, sess *session.IntentContext) (response model.Values, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return h.Execute(ctx, intent, sess)
}

func classifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.Is(err, context.Canceled):
		return ErrorKindCanceled
	default:
		return ErrorKindHandler
	}
}

// runFallback wraps the fallback handler's response as a RouteResult under
// the sentinel route id. Fallback attempts count in metrics like any route.
func (r *router) runFallback(ctx context.Context, intent model.Intent, sess *session.IntentContext) RouteResult {
	start := time.Now()
	res := r.fallback.Handle(ctx, intent, sess)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	response := model.Values{
		"message":  model.String(res.Response),
		"strategy": model.String(string(res.Strategy)),
	}
	if len(res.Options) > 0 {
		response["options"] = model.StringList(res.Options)
	}
	if len(res.SuggestedActions) > 0 {
		response["suggested_actions"] = model.StringList(res.SuggestedActions)
	}

	r.registry.UpdateMetrics(FallbackRouteID, res.Handled, elapsed, intent.Confidence)

	return RouteResult{
		RouteID:     FallbackRouteID,
		Intent:      intent,
		Success:     res.Handled,
		Response:    response,
		FollowUp:    res.SuggestedIntent,
		DurationMs:  elapsed,
		CompletedAt: time.Now().UTC(),
	}
}

// updateSession records the turn on the session: the intent is appended, a
// successful route's response is merged into context data and moves the
// topic to the intent's type.
func (r *router) updateSession(ctx context.Context, sess *session.IntentContext, intent model.Intent, result RouteResult) {
	if sess == nil || r.sessions == nil {
		return
	}

	upd := session.Update{Intent: &intent}
	if result.Success && result.RouteID != FallbackRouteID {
		upd.ContextData = result.Response
		topic := intent.Type
		upd.Topic = &topic
	}

	if err := r.sessions.UpdateSession(ctx, sess.SessionID, upd); err != nil {
		r.l.Warnf(ctx, "%s: session %s update failed: %v", logPrefixRoute, sess.SessionID, err)
	}
}

// hasRequiredKeys checks the route's required context keys against the
// session's context data. Requiring keys with no session at all fails.
func hasRequiredKeys(keys []string, sess *session.IntentContext) bool {
	if len(keys) == 0 {
		return true
	}
	if sess == nil {
		return false
	}
	for _, k := range keys {
		if _, ok := sess.ContextData[k]; !ok {
			return false
		}
	}
	return true
}
