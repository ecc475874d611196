package http

const (
	maxTextLength = 10000

	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
	defaultTopN         = 5
)
