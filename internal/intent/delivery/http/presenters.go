package http

import (
	"errors"

	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
)

// --- Request DTOs ---

type classifyReq struct {
	Text           string `json:"text"`
	SessionID      string `json:"session_id"`
	DetectMultiple bool   `json:"detect_multiple"`
}

func (r classifyReq) validate() error {
	if len(r.Text) > maxTextLength {
		return errors.New("text exceeds maximum length")
	}
	return nil
}

func (r classifyReq) toInput() intent.ClassifyInput {
	return intent.ClassifyInput{
		Text:           r.Text,
		SessionID:      r.SessionID,
		DetectMultiple: r.DetectMultiple,
	}
}

// ---

type routeReq struct {
	Text           string `json:"text"`
	SessionID      string `json:"session_id"`
	DetectMultiple bool   `json:"detect_multiple"`
}

func (r routeReq) validate() error {
	if len(r.Text) > maxTextLength {
		return errors.New("text exceeds maximum length")
	}
	return nil
}

func (r routeReq) toInput() intent.RouteInput {
	return intent.RouteInput{
		Text:           r.Text,
		SessionID:      r.SessionID,
		DetectMultiple: r.DetectMultiple,
	}
}

// ---

type createSessionReq struct {
	Language    string                 `json:"language"`
	Preferences map[string]interface{} `json:"preferences"`
}

func (r createSessionReq) validate() error { return nil }

func (r createSessionReq) toInput() (intent.CreateSessionInput, error) {
	prefs, err := model.ValuesFrom(r.Preferences)
	if err != nil {
		return intent.CreateSessionInput{}, err
	}
	return intent.CreateSessionInput{
		Language:    r.Language,
		Preferences: prefs,
	}, nil
}

// ---

type historyReq struct {
	UserID     string `form:"user_id"`
	Type       string `form:"type"`
	SinceHours int    `form:"since_hours"`
	Limit      int    `form:"limit"`
	N          int    `form:"n"`
	By         string `form:"by"`
}

func (r historyReq) validate() error {
	if r.SinceHours < 0 || r.Limit < 0 || r.N < 0 {
		return errors.New("negative query parameters")
	}
	if r.Type != "" && !validIntentType(model.IntentType(r.Type)) {
		return errors.New("unknown intent type")
	}
	return nil
}

func validIntentType(t model.IntentType) bool {
	for _, known := range model.AllIntentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

func (r historyReq) toInput() intent.HistoryInput {
	limit := r.Limit
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	return intent.HistoryInput{
		UserID:     r.UserID,
		Type:       model.IntentType(r.Type),
		SinceHours: r.SinceHours,
		Limit:      limit,
	}
}

func (r historyReq) topN() int {
	if r.N <= 0 || r.N > maxHistoryLimit {
		return defaultTopN
	}
	return r.N
}
