package intent

import (
	"time"

	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
)

// ClassifyInput is the input for the classify operation.
type ClassifyInput struct {
	Text           string
	SessionID      string // optional; enables context bonuses
	DetectMultiple bool
}

// ClassifyOutput carries either a single intent or a multi-intent result,
// depending on DetectMultiple.
type ClassifyOutput struct {
	Intent *model.Intent            `json:"intent,omitempty"`
	Multi  *model.MultiIntentResult `json:"multi,omitempty"`
}

// RouteInput is the input for the end-to-end route operation
// (classify, route, update session, track).
type RouteInput struct {
	Text           string
	SessionID      string // optional; created on demand when empty
	DetectMultiple bool
}

// RouteOutput is the result of one routed turn.
type RouteOutput struct {
	SessionID string                `json:"session_id"`
	Results   []routing.RouteResult `json:"results"`
}

// CreateSessionInput starts a conversation session.
type CreateSessionInput struct {
	Language    string
	Preferences model.Values
}

// HistoryInput narrows history queries at the API boundary.
type HistoryInput struct {
	UserID     string
	Type       model.IntentType
	SinceHours int
	Limit      int
}

// ToFilter converts the API-boundary input into a tracker filter.
func (in HistoryInput) ToFilter() history.Filter {
	f := history.Filter{
		UserID: in.UserID,
		Type:   in.Type,
		Limit:  in.Limit,
	}
	if in.SinceHours > 0 {
		f.Since = time.Now().UTC().Add(-time.Duration(in.SinceHours) * time.Hour)
	}
	return f
}
