package usecase

import (
	"context"

	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
)

const logPrefixRoute = "internal.intent.Route"

// Route runs one conversational turn end to end: resolve the session,
// classify (with the pre-turn session snapshot), dispatch through the router,
// and track every classified intent regardless of routing outcome.
func (uc *implUseCase) Route(ctx context.Context, sc model.Scope, input intent.RouteInput) intent.RouteOutput {
	sess := uc.sessions.GetOrCreate(ctx, input.SessionID, sc.UserID, "")
	snapshot := snapshotOf(sess)

	var results []routing.RouteResult

	if input.DetectMultiple {
		multi := uc.classifier.ClassifyMulti(ctx, input.Text, snapshot)
		for _, in := range multi.Intents() {
			uc.tracker.Track(ctx, in, sc.UserID)
		}
		results = uc.router.RouteMulti(ctx, multi, sess, sc.Authenticated)
	} else {
		single := uc.classifier.Classify(ctx, input.Text, snapshot)
		uc.tracker.Track(ctx, single, sc.UserID)
		results = []routing.RouteResult{uc.router.Route(ctx, single, sess, sc.Authenticated)}
	}

	uc.l.Infof(ctx, "%s: session=%s user=%s results=%d", logPrefixRoute, sess.SessionID, sc.UserID, len(results))
	return intent.RouteOutput{
		SessionID: sess.SessionID,
		Results:   results,
	}
}

// RegisterRoute adds a route definition to the registry.
func (uc *implUseCase) RegisterRoute(ctx context.Context, route routing.Route, override bool) error {
	if err := uc.registry.Register(route, override); err != nil {
		uc.l.Errorf(ctx, "internal.intent.RegisterRoute: %s: %v", route.ID, err)
		return err
	}
	uc.l.Infof(ctx, "internal.intent.RegisterRoute: registered %s for %s (priority %d)", route.ID, route.IntentType, route.Priority)
	return nil
}

// EnableRoute re-enables a registered route.
func (uc *implUseCase) EnableRoute(ctx context.Context, id string) error {
	return uc.registry.Enable(id)
}

// DisableRoute disables a route without unregistering it.
func (uc *implUseCase) DisableRoute(ctx context.Context, id string) error {
	return uc.registry.Disable(id)
}
