package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-advisory-assistant/internal/fallback"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

func newTestRouter(t *testing.T, reg Registry, timeout time.Duration) (Router, session.Manager) {
	t.Helper()
	l := &mockLogger{}
	sessions := session.New(l, time.Hour)
	fb := fallback.New(l, fallback.Config{})
	return NewRouter(l, reg, fb, sessions, timeout), sessions
}

func intentOf(t model.IntentType, confidence float64) model.Intent {
	return model.Intent{
		ID:         "intent-1",
		Type:       t,
		Confidence: confidence,
		Level:      model.LevelForConfidence(confidence),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the matching route", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "greet", IntentType: model.IntentGreeting, Handler: okHandler("hello"), Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentGreeting, 0.9), sess, true)
		if !res.Success || res.RouteID != "greet" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if msg, _ := res.Response["message"].AsString(); msg != "hello" {
			t.Errorf("expected handler response, got %q", msg)
		}
	})

	t.Run("priority order picks lowest first", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "second", IntentType: model.IntentHelp, Handler: okHandler("second"), Priority: 20, Enabled: true}, false)
		reg.Register(Route{ID: "first", IntentType: model.IntentHelp, Handler: okHandler("first"), Priority: 10, Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.9), sess, true)
		if res.RouteID != "first" {
			t.Errorf("expected first, got %s", res.RouteID)
		}
	})

	t.Run("confidence floor skips to next candidate", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "strict", IntentType: model.IntentHelp, Handler: okHandler("strict"), Priority: 1, MinConfidence: 0.8, Enabled: true}, false)
		reg.Register(Route{ID: "lenient", IntentType: model.IntentHelp, Handler: okHandler("lenient"), Priority: 2, Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.5), sess, true)
		if res.RouteID != "lenient" {
			t.Errorf("expected lenient, got %s", res.RouteID)
		}
	})

	t.Run("auth requirement skips unauthenticated callers", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "secure", IntentType: model.IntentLoanStatus, Handler: okHandler("secure"), RequiresAuth: true, Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentLoanStatus, 0.9), sess, false)
		if res.RouteID != FallbackRouteID {
			t.Errorf("expected fallback for unauthenticated caller, got %s", res.RouteID)
		}
	})

	t.Run("required context keys gate eligibility", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "needs-app", IntentType: model.IntentRiskAssessment, Handler: okHandler("risk"),
			RequiredContextKeys: []string{"application_id"}, Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentRiskAssessment, 0.9), sess, true)
		if res.RouteID != FallbackRouteID {
			t.Fatalf("expected fallback without context key, got %s", res.RouteID)
		}

		sessions.UpdateSession(ctx, sess.SessionID, session.Update{
			ContextData: model.Values{"application_id": model.String("APP-1")},
		})
		sess, _ = sessions.GetSession(ctx, sess.SessionID)
		res = r.Route(ctx, intentOf(model.IntentRiskAssessment, 0.9), sess, true)
		if res.RouteID != "needs-app" {
			t.Errorf("expected needs-app once key present, got %s", res.RouteID)
		}
	})

	t.Run("disabled route falls back", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "off", IntentType: model.IntentHelp, Handler: okHandler("off"), Enabled: false}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.9), sess, true)
		if res.RouteID != FallbackRouteID {
			t.Errorf("expected fallback, got %s", res.RouteID)
		}
		if !res.Success {
			t.Error("fallback strategies always handle")
		}
	})

	t.Run("handler error becomes failed result", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		boom := errors.New("backend unavailable")
		reg.Register(Route{ID: "flaky", IntentType: model.IntentHelp, Enabled: true,
			Handler: HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				return nil, boom
			})}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.9), sess, true)
		if res.Success {
			t.Fatal("expected failure")
		}
		if res.ErrorKind != ErrorKindHandler {
			t.Errorf("expected handler_error, got %s", res.ErrorKind)
		}
		m, _ := reg.Metrics("flaky")
		if m.FailedExecutions != 1 {
			t.Errorf("expected 1 failed execution, got %d", m.FailedExecutions)
		}
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "panicky", IntentType: model.IntentHelp, Enabled: true,
			Handler: HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				panic("boom")
			})}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.9), sess, true)
		if res.Success {
			t.Fatal("expected failure from panicking handler")
		}
		if res.ErrorKind != ErrorKindHandler {
			t.Errorf("expected handler_error, got %s", res.ErrorKind)
		}
	})

	t.Run("handler timeout is classified", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "slow", IntentType: model.IntentHelp, Enabled: true,
			Handler: HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return model.Values{}, nil
				}
			})}, false)
		r, sessions := newTestRouter(t, reg, 20*time.Millisecond)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		res := r.Route(ctx, intentOf(model.IntentHelp, 0.9), sess, true)
		if res.Success {
			t.Fatal("expected timeout failure")
		}
		if res.ErrorKind != ErrorKindTimeout {
			t.Errorf("expected timeout, got %s", res.ErrorKind)
		}
	})

	t.Run("successful route updates the session", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		reg.Register(Route{ID: "greet", IntentType: model.IntentGreeting, Handler: okHandler("hello"), Enabled: true}, false)
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		r.Route(ctx, intentOf(model.IntentGreeting, 0.9), sess, true)

		updated, _ := sessions.GetSession(ctx, sess.SessionID)
		if len(updated.History) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(updated.History))
		}
		if updated.CurrentTopic != model.IntentGreeting {
			t.Errorf("expected topic GREETING, got %s", updated.CurrentTopic)
		}
		if msg, _ := updated.ContextData["message"].AsString(); msg != "hello" {
			t.Errorf("expected response merged into context, got %q", msg)
		}
	})

	t.Run("fallback does not move the topic", func(t *testing.T) {
		reg := NewRegistry(&mockLogger{})
		r, sessions := newTestRouter(t, reg, 0)
		sess := sessions.CreateSession(ctx, "u1", "en", nil)

		r.Route(ctx, intentOf(model.IntentUnknown, 0.1), sess, true)

		updated, _ := sessions.GetSession(ctx, sess.SessionID)
		if updated.CurrentTopic != "" {
			t.Errorf("fallback must not set a topic, got %s", updated.CurrentTopic)
		}
		if len(updated.History) != 1 {
			t.Errorf("fallback turns still append to history, got %d entries", len(updated.History))
		}
	})
}

func TestRouteMulti(t *testing.T) {
	ctx := context.Background()

	reg := NewRegistry(&mockLogger{})
	reg.Register(Route{ID: "credit", IntentType: model.IntentCreditHistory, Handler: okHandler("credit ok"), Enabled: true}, false)
	reg.Register(Route{ID: "loan", IntentType: model.IntentLoanApplication, Enabled: true,
		// The second step reads context the first one wrote.
		Handler: HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
			out := model.Values{"message": model.String("loan ok")}
			if sess != nil {
				if prev, ok := sess.ContextData["message"]; ok {
					out["saw_previous"] = prev
				}
			}
			return out, nil
		})}, false)

	r, sessions := newTestRouter(t, reg, 0)
	sess := sessions.CreateSession(ctx, "u1", "en", nil)

	first := intentOf(model.IntentCreditHistory, 0.9)
	first.ID = "i-credit"
	second := intentOf(model.IntentLoanApplication, 0.9)
	second.ID = "i-loan"

	multi := model.MultiIntentResult{
		Primary:        first,
		Secondary:      []model.Intent{second},
		ExecutionOrder: []string{"i-credit", "i-loan"},
	}

	results := r.RouteMulti(ctx, multi, sess, true)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RouteID != "credit" || results[1].RouteID != "loan" {
		t.Errorf("unexpected dispatch order: %s, %s", results[0].RouteID, results[1].RouteID)
	}
	if _, ok := results[1].Response["saw_previous"]; !ok {
		t.Error("second step should observe context written by the first")
	}

	updated, _ := sessions.GetSession(ctx, sess.SessionID)
	if len(updated.History) != 2 {
		t.Errorf("expected both intents in history, got %d", len(updated.History))
	}
}
