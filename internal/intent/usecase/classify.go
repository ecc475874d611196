package usecase

import (
	"context"

	"loan-advisory-assistant/internal/classifier"
	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/session"
)

// How many of the session's types count as "frequent" for the context bonus.
const frequentIntentLimit = 3

// Classify classifies the text against the pattern table. When a session id
// is supplied the classifier receives a snapshot of that session's state as
// it stood before this call; the session itself is never mutated here.
func (uc *implUseCase) Classify(ctx context.Context, sc model.Scope, input intent.ClassifyInput) intent.ClassifyOutput {
	snapshot := uc.snapshotSession(ctx, input.SessionID)

	if input.DetectMultiple {
		multi := uc.classifier.ClassifyMulti(ctx, input.Text, snapshot)
		for _, in := range multi.Intents() {
			uc.tracker.Track(ctx, in, sc.UserID)
		}
		return intent.ClassifyOutput{Multi: &multi}
	}

	single := uc.classifier.Classify(ctx, input.Text, snapshot)
	uc.tracker.Track(ctx, single, sc.UserID)
	return intent.ClassifyOutput{Intent: &single}
}

// snapshotSession builds the classifier's read-only session view. The
// snapshot deliberately reflects the session before the current turn, so
// context bonuses track the previous turn's topic.
func (uc *implUseCase) snapshotSession(ctx context.Context, sessionID string) *classifier.SessionSnapshot {
	if sessionID == "" {
		return nil
	}
	sess, ok := uc.sessions.GetSession(ctx, sessionID)
	if !ok {
		return nil
	}
	return snapshotOf(sess)
}

func snapshotOf(sess *session.IntentContext) *classifier.SessionSnapshot {
	return &classifier.SessionSnapshot{
		CurrentTopic:    sess.CurrentTopic,
		FrequentIntents: sess.FrequentIntents(frequentIntentLimit),
		Language:        sess.Language,
	}
}
