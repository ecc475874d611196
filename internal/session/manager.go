package session

import (
	"context"

	"github.com/google/uuid"

	"loan-advisory-assistant/internal/model"
)

// Log prefixes
const (
	logPrefixGet     = "internal.session.GetSession"
	logPrefixUpdate  = "internal.session.UpdateSession"
	logPrefixCleanup = "internal.session.CleanupExpired"
)

// CreateSession creates a fresh session and returns its snapshot.
func (m *manager) CreateSession(ctx context.Context, userID, language string, prefs model.Values) *IntentContext {
	now := m.now()
	sess := &IntentContext{
		SessionID:       uuid.NewString(),
		UserID:          userID,
		Language:        language,
		Preferences:     prefs.Clone(),
		ContextData:     model.Values{},
		CreatedAt:       now,
		LastInteraction: now,
	}

	m.mu.Lock()
	m.sessions[sess.SessionID] = sess
	m.mu.Unlock()

	m.l.Debugf(ctx, "internal.session.CreateSession: created %s for user %q", sess.SessionID, userID)
	return sess.clone()
}

// GetSession returns a snapshot of the session, or nil,false when the id is
// unknown or the session has sat idle past the timeout. An expired session is
// deleted on access, so a second lookup also misses.
func (m *manager) GetSession(ctx context.Context, id string) (*IntentContext, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.now().Sub(sess.LastInteraction) > m.timeout {
		delete(m.sessions, id)
		m.l.Debugf(ctx, "%s: session %s expired, evicted", logPrefixGet, id)
		return nil, false
	}
	return sess.clone(), true
}

// GetOrCreate returns the live session for id, or creates a fresh one when id
// is empty, unknown, or expired.
func (m *manager) GetOrCreate(ctx context.Context, id, userID, language string) *IntentContext {
	if id != "" {
		if sess, ok := m.GetSession(ctx, id); ok {
			return sess
		}
	}
	return m.CreateSession(ctx, userID, language, nil)
}

// UpdateSession applies one turn's mutation: appends the intent to history,
// merges context data and preferences last-write-wins, optionally overwrites
// the topic, and always bumps LastInteraction and the interaction counter.
//
// Calls for the same session are expected to be serialized by the caller;
// concurrent updates against one session may interleave map merges.
func (m *manager) UpdateSession(ctx context.Context, id string, upd Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := m.now()
	if now.Sub(sess.LastInteraction) > m.timeout {
		delete(m.sessions, id)
		m.l.Debugf(ctx, "%s: session %s expired, evicted", logPrefixUpdate, id)
		return ErrSessionNotFound
	}

	if upd.Intent != nil {
		sess.History = append(sess.History, *upd.Intent)
	}
	if upd.ContextData != nil {
		sess.ContextData = sess.ContextData.Merge(upd.ContextData)
	}
	if upd.Preferences != nil {
		sess.Preferences = sess.Preferences.Merge(upd.Preferences)
	}
	if upd.Topic != nil {
		sess.CurrentTopic = *upd.Topic
	}

	// LastInteraction only moves forward.
	if now.After(sess.LastInteraction) {
		sess.LastInteraction = now
	}
	sess.InteractionCount++
	return nil
}

// EndSession deletes the session explicitly. Returns false for unknown ids.
func (m *manager) EndSession(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// CleanupExpired eagerly removes every expired session and returns the count.
func (m *manager) CleanupExpired(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, sess := range m.sessions {
		if now.Sub(sess.LastInteraction) > m.timeout {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.l.Infof(ctx, "%s: removed %d expired session(s)", logPrefixCleanup, removed)
	}
	return removed
}

// ActiveSessions returns the current store size, expired entries included
// until their lazy eviction.
func (m *manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
