package middleware

import (
	"loan-advisory-assistant/config"
	"loan-advisory-assistant/pkg/log"
)

type Middleware struct {
	l      log.Logger
	apiKey string
	config *config.Config
}

func New(l log.Logger, apiKey string, cfg *config.Config) Middleware {
	return Middleware{
		l:      l,
		apiKey: apiKey,
		config: cfg,
	}
}
