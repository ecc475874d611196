package session

import "errors"

// Domain-specific errors for the session package.
var (
	// ErrSessionNotFound covers both unknown and expired sessions; callers
	// should treat it as "start a new session", not as a hard failure.
	ErrSessionNotFound = errors.New("session not found or expired")
)
