package history

import (
	"context"
	"sync"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/pkg/log"
)

// Tracker is the bounded log of classified intents with user/type indexes.
// Queries operate on filtered views and never mutate state.
type Tracker interface {
	Track(ctx context.Context, intent model.Intent, userID string)
	History(f Filter) []TrackedIntent
	Frequency(f Filter) map[model.IntentType]int64
	TopIntents(n int, f Filter) []TypeCount
	ConfidenceStats(f Filter) ConfidenceStats
	HourlyVolume(f Filter) map[int]int64
	UserPatterns(userID string) (UserPatterns, bool)
	Summary() Summary
}

type tracker struct {
	l        log.Logger
	capacity int

	mu      sync.RWMutex
	entries []*TrackedIntent
	byUser  map[string][]*TrackedIntent
	byType  map[model.IntentType][]*TrackedIntent
}

var _ Tracker = (*tracker)(nil)

// New creates a Tracker with the given capacity (DefaultCapacity when
// non-positive).
func New(l log.Logger, capacity int) *tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &tracker{
		l:        l,
		capacity: capacity,
		entries:  make([]*TrackedIntent, 0, capacity),
		byUser:   make(map[string][]*TrackedIntent),
		byType:   make(map[model.IntentType][]*TrackedIntent),
	}
}
