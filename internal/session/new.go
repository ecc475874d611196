package session

import (
	"context"
	"sync"
	"time"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/pkg/log"
)

// DefaultTimeout is the idle window after which a session is expired.
const DefaultTimeout = 30 * time.Minute

// Manager owns the session store. All accessors are synchronized and return
// snapshots; expired sessions are evicted lazily on access.
type Manager interface {
	CreateSession(ctx context.Context, userID, language string, prefs model.Values) *IntentContext
	GetSession(ctx context.Context, id string) (*IntentContext, bool)
	GetOrCreate(ctx context.Context, id, userID, language string) *IntentContext
	UpdateSession(ctx context.Context, id string, upd Update) error
	EndSession(ctx context.Context, id string) bool
	CleanupExpired(ctx context.Context) int
	ActiveSessions() int
}

type manager struct {
	l       log.Logger
	timeout time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*IntentContext
}

var _ Manager = (*manager)(nil)

// New creates a session Manager. A non-positive timeout falls back to
// DefaultTimeout.
func New(l log.Logger, timeout time.Duration) *manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &manager{
		l:        l,
		timeout:  timeout,
		now:      time.Now,
		sessions: make(map[string]*IntentContext),
	}
}
