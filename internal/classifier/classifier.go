package classifier

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"loan-advisory-assistant/internal/model"
)

// typeScore pairs an intent type with its computed score.
type typeScore struct {
	t     model.IntentType
	score float64
}

// Classify scores text against every registered intent type and returns the
// best match, or UNKNOWN when the best score is below the confidence floor.
// Pure with respect to the session snapshot: sess is read, never mutated.
func (c *impl) Classify(ctx context.Context, text string, sess *SessionSnapshot) model.Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return c.newIntent(model.IntentUnknown, 0.0, text, sess, nil)
	}

	// Keyed on the exact trimmed text: scoring and entity extraction see the
	// original casing, so case variants must not share a cache entry.
	cacheKey := "single|" + trimmed
	if sess == nil {
		if hit, ok := c.cache.Get(cacheKey); ok {
			return refresh(hit, text)
		}
	}

	scores := c.scoreAll(trimmed, sess)
	if len(scores) == 0 {
		return c.newIntent(model.IntentUnknown, 0.0, text, sess, nil)
	}

	best := scores[0]
	if best.score < c.cfg.MinConfidence {
		c.l.Debugf(ctx, "%s: best score %.2f below floor %.2f, degrading to UNKNOWN",
			LogPrefixClassify, best.score, c.cfg.MinConfidence)
		return c.newIntent(model.IntentUnknown, best.score, text, sess, nil)
	}

	entities := c.extractEntities(trimmed, best.t)
	intent := c.newIntent(best.t, best.score, text, sess, entities)

	if sess == nil {
		c.cache.Add(cacheKey, intent)
	}

	c.l.Debugf(ctx, "%s: %q classified as %s (%.2f, %s)",
		LogPrefixClassify, trimmed, intent.Type, intent.Confidence, intent.Level)
	return intent
}

// ClassifyMulti keeps every intent type clearing the multi-intent threshold,
// ranked by score. When nothing clears the threshold the sole primary is
// UNKNOWN carrying the best raw score.
func (c *impl) ClassifyMulti(ctx context.Context, text string, sess *SessionSnapshot) model.MultiIntentResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		primary := c.newIntent(model.IntentUnknown, 0.0, text, sess, nil)
		return model.MultiIntentResult{Primary: primary, ExecutionOrder: []string{primary.ID}}
	}

	scores := c.scoreAll(trimmed, sess)

	var qualified []typeScore
	for _, s := range scores {
		if s.score >= c.cfg.MultiIntentThreshold {
			qualified = append(qualified, s)
		}
	}

	if len(qualified) == 0 {
		top := 0.0
		if len(scores) > 0 {
			top = scores[0].score
		}
		primary := c.newIntent(model.IntentUnknown, top, text, sess, nil)
		return model.MultiIntentResult{Primary: primary, ExecutionOrder: []string{primary.ID}}
	}

	intents := make([]model.Intent, 0, len(qualified))
	order := make([]string, 0, len(qualified))
	for _, s := range qualified {
		in := c.newIntent(s.t, s.score, text, sess, c.extractEntities(trimmed, s.t))
		intents = append(intents, in)
		order = append(order, in.ID)
	}

	result := model.MultiIntentResult{
		Primary:        intents[0],
		Secondary:      intents[1:],
		ExecutionOrder: order,
	}
	if len(qualified) >= 2 && qualified[0].score-qualified[1].score < c.cfg.ClarificationMargin {
		result.RequiresClarification = true
	}

	c.l.Debugf(ctx, "%s: %q produced %d intent(s), clarification=%v",
		LogPrefixClassifyMulti, trimmed, len(intents), result.RequiresClarification)
	return result
}

// scoreAll computes the weighted score for every registered intent type,
// sorted descending. Ties break on type name so results are deterministic.
func (c *impl) scoreAll(text string, sess *SessionSnapshot) []typeScore {
	lower := strings.ToLower(text)

	c.mu.RLock()
	defer c.mu.RUnlock()

	scores := make([]typeScore, 0, len(c.patterns))
	for t, cp := range c.patterns {
		score := scorePattern(lower, text, cp)
		score += contextBonus(t, sess)
		if score > 1.0 {
			score = 1.0
		}
		scores = append(scores, typeScore{t: t, score: score})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].t < scores[j].t
	})
	return scores
}

// scorePattern computes Σ (matchRatio × weight) over the three signal
// classes. Each signal saturates after a small number of hits so a short
// utterance can still reach full signal strength.
func scorePattern(lower, original string, cp *compiledPattern) float64 {
	score := 0.0

	if len(cp.src.Keywords) > 0 {
		hits := 0
		for _, kw := range cp.src.Keywords {
			if containsWord(lower, kw) {
				hits++
			}
		}
		score += matchRatio(hits, keywordSaturation) * cp.src.Weights.Keyword
	}

	if len(cp.src.Phrases) > 0 {
		hits := 0
		for _, ph := range cp.src.Phrases {
			if strings.Contains(lower, ph) {
				hits++
			}
		}
		score += matchRatio(hits, phraseSaturation) * cp.src.Weights.Phrase
	}

	if len(cp.regexes) > 0 {
		hits := 0
		for _, re := range cp.regexes {
			if re.MatchString(original) {
				hits++
			}
		}
		score += matchRatio(hits, regexSaturation) * cp.src.Weights.Regex
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// contextBonus rewards topic continuity and the user's frequent intents.
// The snapshot reflects the session before this turn, so the bonus applies
// to the previous turn's topic.
func contextBonus(t model.IntentType, sess *SessionSnapshot) float64 {
	if sess == nil {
		return 0
	}
	bonus := 0.0
	if sess.CurrentTopic != "" && sess.CurrentTopic == t {
		bonus += TopicContinuityBonus
	}
	for _, freq := range sess.FrequentIntents {
		if freq == t {
			bonus += FrequentIntentBonus
			break
		}
	}
	return bonus
}

func matchRatio(hits, saturation int) float64 {
	if hits <= 0 {
		return 0
	}
	if hits >= saturation {
		return 1.0
	}
	return float64(hits) / float64(saturation)
}

// containsWord reports whether lower contains kw on word boundaries.
// Multi-word keywords fall back to substring containment.
func containsWord(lower, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(lower, kw)
	}
	idx := 0
	for {
		i := strings.Index(lower[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(lower) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// relativeDateRe matches the relative-date phrases pkg/datemath resolves.
var relativeDateRe = regexp.MustCompile(`(?i)\b(today|tomorrow|in \d+ (?:days?|weeks?|months?)|next (?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)

// extractEntities runs the type's entity sub-patterns against the input.
// A capture group yields the first group, otherwise the whole match.
// Relative-date phrases resolve into an absolute "date" entity.
func (c *impl) extractEntities(text string, t model.IntentType) model.Values {
	c.mu.RLock()
	cp, ok := c.patterns[t]
	c.mu.RUnlock()

	entities := model.Values{}
	if ok {
		for name, re := range cp.entities {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if len(m) > 1 && m[1] != "" {
				entities[name] = model.String(m[1])
			} else {
				entities[name] = model.String(m[0])
			}
		}
	}

	if phrase := relativeDateRe.FindString(text); phrase != "" {
		if resolved, err := c.dates.Parse(phrase, time.Now()); err == nil {
			entities["date"] = model.String(resolved.Format("2006-01-02"))
		}
	}

	if len(entities) == 0 {
		return nil
	}
	return entities
}

func (c *impl) newIntent(t model.IntentType, score float64, text string, sess *SessionSnapshot, entities model.Values) model.Intent {
	lang := c.cfg.DefaultLanguage
	if sess != nil && sess.Language != "" {
		lang = sess.Language
	}
	return model.Intent{
		ID:         uuid.NewString(),
		Type:       t,
		Confidence: score,
		Level:      model.LevelForConfidence(score),
		RawText:    text,
		Entities:   entities,
		Language:   lang,
		Sentiment:  detectSentiment(text),
		CreatedAt:  time.Now().UTC(),
	}
}

// refresh re-mints identity fields on a cache hit so every classification
// keeps a unique id, timestamp, and the text actually submitted.
func refresh(in model.Intent, text string) model.Intent {
	in.ID = uuid.NewString()
	in.CreatedAt = time.Now().UTC()
	in.RawText = text
	in.Entities = in.Entities.Clone()
	return in
}
