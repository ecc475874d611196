package usecase

import (
	"context"
	"testing"
	"time"

	"loan-advisory-assistant/internal/classifier"
	"loan-advisory-assistant/internal/fallback"
	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/internal/session"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// newTestUseCase wires the full stack with real components.
func newTestUseCase(t *testing.T) (*implUseCase, history.Tracker) {
	t.Helper()
	l := &mockLogger{}

	cls, err := classifier.New(l, classifier.Config{}, classifier.DefaultPatterns())
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	sessions := session.New(l, time.Hour)
	registry := routing.NewRegistry(l)
	fb := fallback.New(l, fallback.Config{})
	router := routing.NewRouter(l, registry, fb, sessions, 0)
	tracker := history.New(l, 1000)

	return New(l, cls, sessions, registry, router, tracker), tracker
}

func echoRoute(id string, t model.IntentType) routing.Route {
	return routing.Route{
		ID:         id,
		IntentType: t,
		Enabled:    true,
		Handler: routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
			return model.Values{"message": model.String("handled " + id)}, nil
		}),
	}
}

func TestUseCaseClassify(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Authenticated: true}

	t.Run("single intent is tracked", func(t *testing.T) {
		uc, tracker := newTestUseCase(t)
		out := uc.Classify(ctx, sc, intent.ClassifyInput{Text: "hello"})
		if out.Intent == nil || out.Intent.Type != model.IntentGreeting {
			t.Fatalf("unexpected output: %+v", out)
		}
		if got := tracker.History(history.Filter{UserID: "u1"}); len(got) != 1 {
			t.Errorf("expected 1 tracked intent, got %d", len(got))
		}
	})

	t.Run("multi intent tracks every result", func(t *testing.T) {
		uc, tracker := newTestUseCase(t)
		out := uc.Classify(ctx, sc, intent.ClassifyInput{
			Text:           "check my credit history and apply for a loan",
			DetectMultiple: true,
		})
		if out.Multi == nil {
			t.Fatal("expected multi result")
		}
		want := 1 + len(out.Multi.Secondary)
		if got := tracker.History(history.Filter{UserID: "u1"}); len(got) != want {
			t.Errorf("expected %d tracked intents, got %d", want, len(got))
		}
	})

	t.Run("unknown session id classifies without context", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		out := uc.Classify(ctx, sc, intent.ClassifyInput{Text: "hello", SessionID: "missing"})
		if out.Intent == nil || out.Intent.Type != model.IntentGreeting {
			t.Errorf("unexpected output: %+v", out)
		}
	})
}

func TestUseCaseRoute(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Authenticated: true}

	t.Run("creates a session on demand", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		uc.RegisterRoute(ctx, echoRoute("greet", model.IntentGreeting), false)

		out := uc.Route(ctx, sc, intent.RouteInput{Text: "hello"})
		if out.SessionID == "" {
			t.Fatal("expected a session id")
		}
		if len(out.Results) != 1 || out.Results[0].RouteID != "greet" {
			t.Fatalf("unexpected results: %+v", out.Results)
		}

		sess, ok := uc.GetSession(ctx, out.SessionID)
		if !ok {
			t.Fatal("expected the session to persist")
		}
		if len(sess.History) != 1 {
			t.Errorf("expected the turn recorded in session history, got %d", len(sess.History))
		}
	})

	t.Run("reuses the supplied session", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		uc.RegisterRoute(ctx, echoRoute("greet", model.IntentGreeting), false)

		first := uc.Route(ctx, sc, intent.RouteInput{Text: "hello"})
		second := uc.Route(ctx, sc, intent.RouteInput{Text: "hello again", SessionID: first.SessionID})
		if second.SessionID != first.SessionID {
			t.Errorf("expected session reuse, got %s then %s", first.SessionID, second.SessionID)
		}
	})

	t.Run("no matching route falls back", func(t *testing.T) {
		uc, tracker := newTestUseCase(t)

		out := uc.Route(ctx, sc, intent.RouteInput{Text: "check my credit history"})
		if len(out.Results) != 1 || out.Results[0].RouteID != routing.FallbackRouteID {
			t.Fatalf("expected fallback, got %+v", out.Results)
		}
		// The intent is still tracked.
		if got := tracker.History(history.Filter{UserID: "u1"}); len(got) != 1 {
			t.Errorf("expected tracked intent despite fallback, got %d", len(got))
		}
	})

	t.Run("multi intent dispatches in order", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		uc.RegisterRoute(ctx, echoRoute("credit", model.IntentCreditHistory), false)
		uc.RegisterRoute(ctx, echoRoute("loan", model.IntentLoanApplication), false)

		out := uc.Route(ctx, sc, intent.RouteInput{
			Text:           "check my credit history and apply for a loan",
			DetectMultiple: true,
		})
		if len(out.Results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(out.Results))
		}
		if out.Results[0].RouteID != "credit" || out.Results[1].RouteID != "loan" {
			t.Errorf("unexpected dispatch order: %s, %s", out.Results[0].RouteID, out.Results[1].RouteID)
		}
	})
}

func TestUseCaseRouteAdmin(t *testing.T) {
	ctx := context.Background()

	uc, _ := newTestUseCase(t)
	if err := uc.RegisterRoute(ctx, echoRoute("r1", model.IntentHelp), false); err != nil {
		t.Fatalf("RegisterRoute: %v", err)
	}
	if err := uc.RegisterRoute(ctx, echoRoute("r1", model.IntentHelp), false); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := uc.DisableRoute(ctx, "r1"); err != nil {
		t.Fatalf("DisableRoute: %v", err)
	}
	if err := uc.EnableRoute(ctx, "r1"); err != nil {
		t.Fatalf("EnableRoute: %v", err)
	}
	if err := uc.EnableRoute(ctx, "missing"); err == nil {
		t.Error("expected error enabling unknown route")
	}
}

func TestUseCaseSessions(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Authenticated: true}

	uc, _ := newTestUseCase(t)
	sess := uc.CreateSession(ctx, sc, intent.CreateSessionInput{
		Language:    "en",
		Preferences: model.Values{"tone": model.String("formal")},
	})
	if sess.SessionID == "" || sess.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, ok := uc.GetSession(ctx, sess.SessionID)
	if !ok || got.Language != "en" {
		t.Fatalf("expected session back, got %+v ok=%v", got, ok)
	}

	if !uc.EndSession(ctx, sess.SessionID) {
		t.Error("expected EndSession to succeed")
	}
	if _, ok := uc.GetSession(ctx, sess.SessionID); ok {
		t.Error("expected session gone")
	}
}

func TestUseCaseAnalytics(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Authenticated: true}

	uc, _ := newTestUseCase(t)
	uc.RegisterRoute(ctx, echoRoute("greet", model.IntentGreeting), false)
	uc.Route(ctx, sc, intent.RouteInput{Text: "hello"})
	uc.Route(ctx, sc, intent.RouteInput{Text: "hi there"})

	t.Run("history queries", func(t *testing.T) {
		got := uc.GetHistory(ctx, intent.HistoryInput{UserID: "u1"})
		if len(got) != 2 {
			t.Errorf("expected 2 tracked intents, got %d", len(got))
		}
		freq := uc.GetFrequency(ctx, intent.HistoryInput{})
		if freq[model.IntentGreeting] != 2 {
			t.Errorf("expected 2 greetings, got %v", freq)
		}
		top := uc.GetTopIntents(ctx, 1, intent.HistoryInput{})
		if len(top) != 1 || top[0].Type != model.IntentGreeting {
			t.Errorf("unexpected top intents: %+v", top)
		}
		stats := uc.GetConfidenceStats(ctx, intent.HistoryInput{})
		if stats.Count != 2 {
			t.Errorf("expected 2 samples, got %d", stats.Count)
		}
		if p, ok := uc.GetUserPatterns(ctx, "u1"); !ok || p.TotalIntents != 2 {
			t.Errorf("unexpected user patterns: %+v ok=%v", p, ok)
		}
		if s := uc.GetHistorySummary(ctx); s.TotalTracked != 2 {
			t.Errorf("unexpected summary: %+v", s)
		}
	})

	t.Run("route metrics", func(t *testing.T) {
		m, ok := uc.GetRouteMetrics(ctx, "greet")
		if !ok {
			t.Fatal("expected metrics for greet")
		}
		if m.TotalExecutions != 2 || m.SuccessfulExecutions != 2 {
			t.Errorf("unexpected metrics: %+v", m)
		}
		s := uc.GetMetricsSummary(ctx)
		if s.TotalExecutions != 2 {
			t.Errorf("unexpected metrics summary: %+v", s)
		}
		top := uc.GetTopRoutes(ctx, 1, routing.TopByExecutions)
		if len(top) != 1 || top[0].RouteID != "greet" {
			t.Errorf("unexpected top routes: %+v", top)
		}
	})
}
