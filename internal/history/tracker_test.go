package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loan-advisory-assistant/internal/model"
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

func trackedIntent(id string, t model.IntentType, confidence float64) model.Intent {
	return model.Intent{ID: id, Type: t, Confidence: confidence}
}

func TestTrackAndHistory(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 100)

	tr.Track(ctx, trackedIntent("i1", model.IntentGreeting, 0.9), "alice")
	tr.Track(ctx, trackedIntent("i2", model.IntentLoanApplication, 0.8), "alice")
	tr.Track(ctx, trackedIntent("i3", model.IntentLoanApplication, 0.7), "bob")

	t.Run("newest first", func(t *testing.T) {
		got := tr.History(Filter{})
		if len(got) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(got))
		}
		if got[0].Intent.ID != "i3" || got[2].Intent.ID != "i1" {
			t.Errorf("expected newest-first ordering, got %s..%s", got[0].Intent.ID, got[2].Intent.ID)
		}
	})

	t.Run("user filter", func(t *testing.T) {
		got := tr.History(Filter{UserID: "alice"})
		if len(got) != 2 {
			t.Errorf("expected 2 entries for alice, got %d", len(got))
		}
	})

	t.Run("type filter", func(t *testing.T) {
		got := tr.History(Filter{Type: model.IntentLoanApplication})
		if len(got) != 2 {
			t.Errorf("expected 2 loan applications, got %d", len(got))
		}
	})

	t.Run("combined filter", func(t *testing.T) {
		got := tr.History(Filter{UserID: "bob", Type: model.IntentLoanApplication})
		if len(got) != 1 || got[0].Intent.ID != "i3" {
			t.Errorf("unexpected combined filter result: %+v", got)
		}
	})

	t.Run("limit caps the page", func(t *testing.T) {
		got := tr.History(Filter{Limit: 1})
		if len(got) != 1 || got[0].Intent.ID != "i3" {
			t.Errorf("expected only the newest entry, got %+v", got)
		}
	})

	t.Run("since excludes older entries", func(t *testing.T) {
		got := tr.History(Filter{Since: time.Now().UTC().Add(time.Hour)})
		if len(got) != 0 {
			t.Errorf("expected nothing newer than one hour from now, got %d", len(got))
		}
	})
}

func TestCapacityEviction(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 3)

	for i := 0; i < 5; i++ {
		user := "alice"
		if i%2 == 1 {
			user = "bob"
		}
		tr.Track(ctx, trackedIntent(fmt.Sprintf("i%d", i), model.IntentQuestion, 0.5), user)
	}

	got := tr.History(Filter{})
	if len(got) != 3 {
		t.Fatalf("expected capacity 3 to hold, got %d entries", len(got))
	}
	if got[0].Intent.ID != "i4" || got[2].Intent.ID != "i2" {
		t.Errorf("expected i4..i2 retained, got %s..%s", got[0].Intent.ID, got[2].Intent.ID)
	}

	// Indexes must agree with the main sequence after eviction.
	alice := tr.History(Filter{UserID: "alice"})
	bob := tr.History(Filter{UserID: "bob"})
	if len(alice)+len(bob) != 3 {
		t.Errorf("user indexes out of sync: alice=%d bob=%d", len(alice), len(bob))
	}

	s := tr.Summary()
	if s.TotalTracked != 3 || s.Capacity != 3 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestFrequencyAndTopIntents(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 100)

	for i := 0; i < 3; i++ {
		tr.Track(ctx, trackedIntent(fmt.Sprintf("l%d", i), model.IntentLoanApplication, 0.8), "alice")
	}
	tr.Track(ctx, trackedIntent("q1", model.IntentQuestion, 0.5), "alice")
	tr.Track(ctx, trackedIntent("g1", model.IntentGreeting, 0.9), "bob")

	freq := tr.Frequency(Filter{})
	if freq[model.IntentLoanApplication] != 3 || freq[model.IntentQuestion] != 1 {
		t.Errorf("unexpected frequencies: %v", freq)
	}

	top := tr.TopIntents(2, Filter{})
	if len(top) != 2 || top[0].Type != model.IntentLoanApplication || top[0].Count != 3 {
		t.Errorf("unexpected top intents: %+v", top)
	}
	// GREETING and QUESTION tie at one; the tie breaks on type name.
	if top[1].Type != model.IntentGreeting {
		t.Errorf("expected GREETING second, got %s", top[1].Type)
	}
}

func TestConfidenceStats(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 100)

	for i, c := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		tr.Track(ctx, trackedIntent(fmt.Sprintf("i%d", i), model.IntentQuestion, c), "alice")
	}

	s := tr.ConfidenceStats(Filter{})
	if s.Count != 5 {
		t.Fatalf("expected 5 samples, got %d", s.Count)
	}
	if s.Min != 0.1 || s.Max != 0.9 {
		t.Errorf("expected min 0.1 max 0.9, got %f/%f", s.Min, s.Max)
	}
	if s.Mean < 0.499 || s.Mean > 0.501 {
		t.Errorf("expected mean 0.5, got %f", s.Mean)
	}
	if s.P50 != 0.5 {
		t.Errorf("expected p50 0.5, got %f", s.P50)
	}
	if s.P90 != 0.9 {
		t.Errorf("expected p90 0.9, got %f", s.P90)
	}

	t.Run("empty view", func(t *testing.T) {
		s := tr.ConfidenceStats(Filter{UserID: "nobody"})
		if s.Count != 0 {
			t.Errorf("expected zero stats, got %+v", s)
		}
	})
}

func TestUserPatterns(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 100)

	tr.Track(ctx, trackedIntent("i1", model.IntentLoanApplication, 0.8), "alice")
	tr.Track(ctx, trackedIntent("i2", model.IntentLoanApplication, 0.6), "alice")
	tr.Track(ctx, trackedIntent("i3", model.IntentQuestion, 0.4), "alice")

	p, ok := tr.UserPatterns("alice")
	if !ok {
		t.Fatal("expected patterns for alice")
	}
	if p.TotalIntents != 3 {
		t.Errorf("expected 3 intents, got %d", p.TotalIntents)
	}
	if len(p.TopTypes) == 0 || p.TopTypes[0].Type != model.IntentLoanApplication {
		t.Errorf("expected LOAN_APPLICATION on top, got %+v", p.TopTypes)
	}
	if p.AvgConfidence < 0.599 || p.AvgConfidence > 0.601 {
		t.Errorf("expected avg 0.6, got %f", p.AvgConfidence)
	}
	if p.LastSeen.Before(p.FirstSeen) {
		t.Error("last seen cannot precede first seen")
	}

	if _, ok := tr.UserPatterns("nobody"); ok {
		t.Error("expected no patterns for unknown user")
	}
}

func TestHourlyVolume(t *testing.T) {
	ctx := context.Background()
	tr := New(&mockLogger{}, 100)
	tr.Track(ctx, trackedIntent("i1", model.IntentQuestion, 0.5), "alice")

	vol := tr.HourlyVolume(Filter{})
	hour := time.Now().UTC().Hour()
	if vol[hour] != 1 {
		t.Errorf("expected 1 entry in hour %d, got %v", hour, vol)
	}
}
