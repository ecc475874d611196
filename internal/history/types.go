package history

import (
	"time"

	"loan-advisory-assistant/internal/model"
)

// DefaultCapacity bounds the main log when no capacity is configured.
const DefaultCapacity = 10000

// TrackedIntent is one history entry: the intent plus tracking metadata.
type TrackedIntent struct {
	Intent    model.Intent `json:"intent"`
	UserID    string       `json:"user_id,omitempty"`
	TrackedAt time.Time    `json:"tracked_at"`
}

// Filter narrows history queries. Zero values mean "no constraint".
type Filter struct {
	UserID string
	Type   model.IntentType
	Since  time.Time
	Limit  int
}

// TypeCount pairs an intent type with its occurrence count.
type TypeCount struct {
	Type  model.IntentType `json:"type"`
	Count int64            `json:"count"`
}

// ConfidenceStats summarizes confidence scores over a filtered view.
type ConfidenceStats struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	P99   float64 `json:"p99"`
}

// UserPatterns describes one user's classified-intent behavior.
type UserPatterns struct {
	UserID        string      `json:"user_id"`
	TotalIntents  int64       `json:"total_intents"`
	TopTypes      []TypeCount `json:"top_types"`
	ActiveHours   []int       `json:"active_hours"` // hours of day, most active first
	AvgConfidence float64     `json:"avg_confidence"`
	FirstSeen     time.Time   `json:"first_seen"`
	LastSeen      time.Time   `json:"last_seen"`
}

// Summary is the tracker-wide rollup.
type Summary struct {
	TotalTracked int64       `json:"total_tracked"`
	Capacity     int         `json:"capacity"`
	UniqueUsers  int         `json:"unique_users"`
	ByType       []TypeCount `json:"by_type"`
}
