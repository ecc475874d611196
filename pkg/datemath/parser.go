package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves the relative-date phrases the intent classifier recognizes
// ("today", "tomorrow", "in N days/weeks/months", "next <weekday>") into
// absolute dates. Dates point forward; loan conversations schedule ahead.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser resolving dates in the given IANA timezone,
// e.g. "Asia/Ho_Chi_Minh".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var durationRe = regexp.MustCompile(`^in (\d+) (days?|weeks?|months?)$`)

// Parse resolves a relative phrase against base (usually time.Now()) to the
// start of the target day. Phrases outside the supported grammar return an
// error rather than a guessed date.
func (p *Parser) Parse(relative string, base time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch {
	case relative == "today":
		return p.startOfDay(base), nil
	case relative == "tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 1)), nil
	case strings.HasPrefix(relative, "in "):
		return p.resolveOffset(relative, base)
	case strings.HasPrefix(relative, "next "):
		return p.resolveWeekday(relative, base)
	}
	return base, fmt.Errorf("unsupported date phrase: %q", relative)
}

// resolveOffset handles "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) resolveOffset(relative string, base time.Time) (time.Time, error) {
	m := durationRe.FindStringSubmatch(relative)
	if m == nil {
		return base, fmt.Errorf("unsupported duration phrase: %q", relative)
	}

	amount, _ := strconv.Atoi(m[1])
	switch {
	case strings.HasPrefix(m[2], "day"):
		return p.startOfDay(base.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(m[2], "week"):
		return p.startOfDay(base.AddDate(0, 0, amount*7)), nil
	default: // month
		return p.startOfDay(base.AddDate(0, amount, 0)), nil
	}
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// resolveWeekday handles "next monday" through "next sunday". The target is
// always in the future: "next wednesday" on a Wednesday means a week out.
func (p *Parser) resolveWeekday(relative string, base time.Time) (time.Time, error) {
	target, ok := weekdays[strings.TrimPrefix(relative, "next ")]
	if !ok {
		return base, fmt.Errorf("unsupported weekday phrase: %q", relative)
	}

	days := int(target - base.Weekday())
	if days <= 0 {
		days += 7
	}
	return p.startOfDay(base.AddDate(0, 0, days)), nil
}

func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
