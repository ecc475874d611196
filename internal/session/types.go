package session

import (
	"sort"
	"time"

	"loan-advisory-assistant/internal/model"
)

// IntentContext is the per-conversation state tracked across turns.
// History is append-only; LastInteraction only moves forward.
type IntentContext struct {
	SessionID        string           `json:"session_id"`
	UserID           string           `json:"user_id,omitempty"`
	History          []model.Intent   `json:"history"`
	CurrentTopic     model.IntentType `json:"current_topic,omitempty"`
	ContextData      model.Values     `json:"context_data,omitempty"`
	Preferences      model.Values     `json:"preferences,omitempty"`
	Language         string           `json:"language,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	LastInteraction  time.Time        `json:"last_interaction"`
	InteractionCount int              `json:"interaction_count"`
}

// Update describes one UpdateSession mutation. Nil fields are left untouched.
type Update struct {
	Intent      *model.Intent
	ContextData model.Values
	Preferences model.Values
	Topic       *model.IntentType
}

// RecentIntents returns up to n most recent intents, newest last.
func (c *IntentContext) RecentIntents(n int) []model.Intent {
	if n <= 0 || len(c.History) == 0 {
		return nil
	}
	if len(c.History) <= n {
		return c.History
	}
	return c.History[len(c.History)-n:]
}

// FrequentIntents returns the session's intent types ordered by frequency,
// most frequent first. Ties break on type name.
func (c *IntentContext) FrequentIntents(limit int) []model.IntentType {
	if len(c.History) == 0 {
		return nil
	}
	counts := make(map[model.IntentType]int)
	for _, in := range c.History {
		counts[in.Type]++
	}
	types := make([]model.IntentType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	if limit > 0 && len(types) > limit {
		types = types[:limit]
	}
	return types
}

// clone returns a snapshot safe to hand outside the manager; callers never
// receive a live reference into the session map.
func (c *IntentContext) clone() *IntentContext {
	cp := *c
	cp.History = append([]model.Intent(nil), c.History...)
	cp.ContextData = c.ContextData.Clone()
	cp.Preferences = c.Preferences.Clone()
	return &cp
}
