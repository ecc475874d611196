package classifier

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/pkg/datemath"
	"loan-advisory-assistant/pkg/log"
)

// Classifier scores free text against the pattern table.
type Classifier interface {
	Classify(ctx context.Context, text string, sess *SessionSnapshot) model.Intent
	ClassifyMulti(ctx context.Context, text string, sess *SessionSnapshot) model.MultiIntentResult
	AddPattern(p IntentPattern) error
	RemovePattern(t model.IntentType)
}

type impl struct {
	l   log.Logger
	cfg Config

	dates *datemath.Parser

	mu       sync.RWMutex
	patterns map[model.IntentType]*compiledPattern

	// cache holds context-free results only; classification with a session
	// snapshot depends on mutable state and is never cached.
	cache *expirable.LRU[string, model.Intent]
}

var _ Classifier = (*impl)(nil)

// New compiles the given patterns and returns a ready Classifier.
// Pass DefaultPatterns() for the built-in loan advisory table.
func New(l log.Logger, cfg Config, patterns []IntentPattern) (*impl, error) {
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	if cfg.MultiIntentThreshold <= 0 {
		cfg.MultiIntentThreshold = DefaultMultiIntentThreshold
	}
	if cfg.ClarificationMargin <= 0 {
		cfg.ClarificationMargin = DefaultClarificationMargin
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = DefaultLanguage
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}

	dates, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("classifier timezone: %w", err)
	}

	c := &impl{
		l:        l,
		cfg:      cfg,
		dates:    dates,
		patterns: make(map[model.IntentType]*compiledPattern, len(patterns)),
		cache: expirable.NewLRU[string, model.Intent](
			cfg.CacheSize, nil, time.Duration(cfg.CacheTTLSeconds)*time.Second,
		),
	}

	for _, p := range patterns {
		if err := c.addLocked(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddPattern registers or replaces the pattern set for one intent type.
func (c *impl) AddPattern(p IntentPattern) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.addLocked(p); err != nil {
		return err
	}
	c.cache.Purge()
	return nil
}

// RemovePattern drops the pattern set for one intent type.
func (c *impl) RemovePattern(t model.IntentType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.patterns, t)
	c.cache.Purge()
}

func (c *impl) addLocked(p IntentPattern) error {
	if p.Type == "" || p.Type == model.IntentUnknown {
		return fmt.Errorf("pattern type %q is not registrable", p.Type)
	}
	cp := &compiledPattern{
		src:      p,
		regexes:  make([]*regexp.Regexp, 0, len(p.Regexes)),
		entities: make(map[string]*regexp.Regexp, len(p.EntityPatterns)),
	}
	for _, expr := range p.Regexes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("pattern %s: invalid regex %q: %w", p.Type, expr, err)
		}
		cp.regexes = append(cp.regexes, re)
	}
	for name, expr := range p.EntityPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("pattern %s: invalid entity regex %q: %w", p.Type, expr, err)
		}
		cp.entities[name] = re
	}
	c.patterns[p.Type] = cp
	return nil
}
