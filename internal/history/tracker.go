package history

import (
	"context"
	"math"
	"sort"
	"time"

	"loan-advisory-assistant/internal/model"
)

const logPrefixTrack = "internal.history.Track"

// Track appends one classified intent to the log. On overflow the oldest
// entry is evicted from the main sequence and both indexes stay consistent.
func (t *tracker) Track(ctx context.Context, intent model.Intent, userID string) {
	entry := &TrackedIntent{
		Intent:    intent,
		UserID:    userID,
		TrackedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.capacity {
		t.evictOldestLocked(ctx)
	}

	t.entries = append(t.entries, entry)
	if userID != "" {
		t.byUser[userID] = append(t.byUser[userID], entry)
	}
	t.byType[intent.Type] = append(t.byType[intent.Type], entry)
}

// evictOldestLocked drops the head of the main sequence and removes the same
// entry from its user/type index lists. The global oldest entry is always the
// head of those lists, so removal is a head pop.
func (t *tracker) evictOldestLocked(ctx context.Context) {
	oldest := t.entries[0]
	t.entries = t.entries[1:]

	if oldest.UserID != "" {
		t.byUser[oldest.UserID] = dropHead(t.byUser[oldest.UserID], oldest)
		if len(t.byUser[oldest.UserID]) == 0 {
			delete(t.byUser, oldest.UserID)
		}
	}
	t.byType[oldest.Intent.Type] = dropHead(t.byType[oldest.Intent.Type], oldest)
	if len(t.byType[oldest.Intent.Type]) == 0 {
		delete(t.byType, oldest.Intent.Type)
	}

	t.l.Debugf(ctx, "%s: capacity %d reached, evicted oldest entry", logPrefixTrack, t.capacity)
}

func dropHead(list []*TrackedIntent, entry *TrackedIntent) []*TrackedIntent {
	if len(list) > 0 && list[0] == entry {
		return list[1:]
	}
	// Entry not at the head would mean index order diverged from the log;
	// scan as a safety net.
	for i, e := range list {
		if e == entry {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// filteredLocked returns the matching entries, oldest first.
func (t *tracker) filteredLocked(f Filter) []*TrackedIntent {
	// Start from the narrowest index available.
	source := t.entries
	if f.UserID != "" {
		source = t.byUser[f.UserID]
	} else if f.Type != "" {
		source = t.byType[f.Type]
	}

	out := make([]*TrackedIntent, 0, len(source))
	for _, e := range source {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.Type != "" && e.Intent.Type != f.Type {
			continue
		}
		if !f.Since.IsZero() && e.TrackedAt.Before(f.Since) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// History returns matching entries, newest first, capped at f.Limit.
func (t *tracker) History(f Filter) []TrackedIntent {
	t.mu.RLock()
	matched := t.filteredLocked(f)
	t.mu.RUnlock()

	out := make([]TrackedIntent, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		out = append(out, *matched[i])
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

// Frequency counts matching entries per intent type.
func (t *tracker) Frequency(f Filter) map[model.IntentType]int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	freq := make(map[model.IntentType]int64)
	for _, e := range t.filteredLocked(f) {
		freq[e.Intent.Type]++
	}
	return freq
}

// TopIntents returns the n most frequent intent types under the filter.
func (t *tracker) TopIntents(n int, f Filter) []TypeCount {
	freq := t.Frequency(f)

	out := make([]TypeCount, 0, len(freq))
	for typ, count := range freq {
		out = append(out, TypeCount{Type: typ, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ConfidenceStats summarizes confidence over the filtered view.
func (t *tracker) ConfidenceStats(f Filter) ConfidenceStats {
	t.mu.RLock()
	matched := t.filteredLocked(f)
	t.mu.RUnlock()

	if len(matched) == 0 {
		return ConfidenceStats{}
	}

	scores := make([]float64, 0, len(matched))
	sum := 0.0
	for _, e := range matched {
		scores = append(scores, e.Intent.Confidence)
		sum += e.Intent.Confidence
	}
	sort.Float64s(scores)

	return ConfidenceStats{
		Count: int64(len(scores)),
		Mean:  sum / float64(len(scores)),
		Min:   scores[0],
		Max:   scores[len(scores)-1],
		P50:   percentile(scores, 50),
		P90:   percentile(scores, 90),
		P99:   percentile(scores, 99),
	}
}

// percentile takes the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p/100.0*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

// HourlyVolume buckets matching entries by hour of day (0-23, UTC).
func (t *tracker) HourlyVolume(f Filter) map[int]int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	volume := make(map[int]int64)
	for _, e := range t.filteredLocked(f) {
		volume[e.TrackedAt.UTC().Hour()]++
	}
	return volume
}

// UserPatterns describes one user's tracked behavior; ok is false when the
// user has no entries.
func (t *tracker) UserPatterns(userID string) (UserPatterns, bool) {
	t.mu.RLock()
	entries := t.byUser[userID]
	if len(entries) == 0 {
		t.mu.RUnlock()
		return UserPatterns{}, false
	}

	typeCounts := make(map[model.IntentType]int64)
	hourCounts := make(map[int]int64)
	sum := 0.0
	first, last := entries[0].TrackedAt, entries[0].TrackedAt
	for _, e := range entries {
		typeCounts[e.Intent.Type]++
		hourCounts[e.TrackedAt.UTC().Hour()]++
		sum += e.Intent.Confidence
		if e.TrackedAt.Before(first) {
			first = e.TrackedAt
		}
		if e.TrackedAt.After(last) {
			last = e.TrackedAt
		}
	}
	total := int64(len(entries))
	t.mu.RUnlock()

	topTypes := make([]TypeCount, 0, len(typeCounts))
	for typ, count := range typeCounts {
		topTypes = append(topTypes, TypeCount{Type: typ, Count: count})
	}
	sort.Slice(topTypes, func(i, j int) bool {
		if topTypes[i].Count != topTypes[j].Count {
			return topTypes[i].Count > topTypes[j].Count
		}
		return topTypes[i].Type < topTypes[j].Type
	})

	hours := make([]int, 0, len(hourCounts))
	for h := range hourCounts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if hourCounts[hours[i]] != hourCounts[hours[j]] {
			return hourCounts[hours[i]] > hourCounts[hours[j]]
		}
		return hours[i] < hours[j]
	})

	return UserPatterns{
		UserID:        userID,
		TotalIntents:  total,
		TopTypes:      topTypes,
		ActiveHours:   hours,
		AvgConfidence: sum / float64(total),
		FirstSeen:     first,
		LastSeen:      last,
	}, true
}

// Summary rolls up the whole tracker.
func (t *tracker) Summary() Summary {
	t.mu.RLock()
	total := int64(len(t.entries))
	users := len(t.byUser)
	typeCounts := make(map[model.IntentType]int64, len(t.byType))
	for typ, list := range t.byType {
		typeCounts[typ] = int64(len(list))
	}
	t.mu.RUnlock()

	byType := make([]TypeCount, 0, len(typeCounts))
	for typ, count := range typeCounts {
		byType = append(byType, TypeCount{Type: typ, Count: count})
	}
	sort.Slice(byType, func(i, j int) bool {
		if byType[i].Count != byType[j].Count {
			return byType[i].Count > byType[j].Count
		}
		return byType[i].Type < byType[j].Type
	})

	return Summary{
		TotalTracked: total,
		Capacity:     t.capacity,
		UniqueUsers:  users,
		ByType:       byType,
	}
}
