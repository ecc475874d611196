package usecase

import (
	"context"

	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

// CreateSession starts a fresh conversation session for the caller.
func (uc *implUseCase) CreateSession(ctx context.Context, sc model.Scope, input intent.CreateSessionInput) *session.IntentContext {
	return uc.sessions.CreateSession(ctx, sc.UserID, input.Language, input.Preferences)
}

// GetSession returns a snapshot of the session; expired sessions read as
// missing and are evicted.
func (uc *implUseCase) GetSession(ctx context.Context, id string) (*session.IntentContext, bool) {
	return uc.sessions.GetSession(ctx, id)
}

// EndSession deletes the session explicitly.
func (uc *implUseCase) EndSession(ctx context.Context, id string) bool {
	return uc.sessions.EndSession(ctx, id)
}
