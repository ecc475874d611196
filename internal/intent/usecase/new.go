package usecase

import (
	"loan-advisory-assistant/internal/classifier"
	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/internal/session"
	pkgLog "loan-advisory-assistant/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	classifier classifier.Classifier
	sessions   session.Manager
	registry   routing.Registry
	router     routing.Router
	tracker    history.Tracker
}

var _ intent.UseCase = (*implUseCase)(nil)

// New creates the intent UseCase instance.
func New(
	l pkgLog.Logger,
	cls classifier.Classifier,
	sessions session.Manager,
	registry routing.Registry,
	router routing.Router,
	tracker history.Tracker,
) *implUseCase {
	return &implUseCase{
		l:          l,
		classifier: cls,
		sessions:   sessions,
		registry:   registry,
		router:     router,
		tracker:    tracker,
	}
}
