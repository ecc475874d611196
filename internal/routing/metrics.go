package routing

import "sort"

// UpdateMetrics records one execution attempt. Every attempt, success or
// failure, increments the total; averages use the incremental formula
// newAvg = (oldAvg×(n−1) + value) / n so no latency history is kept.
func (r *registry) UpdateMetrics(id string, success bool, latencyMs, confidence float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[id]
	if !ok {
		m = &RouteMetrics{RouteID: id}
		r.metrics[id] = m
	}

	now := r.now()

	m.TotalExecutions++
	if success {
		m.SuccessfulExecutions++
	} else {
		m.FailedExecutions++
	}

	n := float64(m.TotalExecutions)
	m.AvgLatencyMs = (m.AvgLatencyMs*(n-1) + latencyMs) / n
	m.AvgConfidence = (m.AvgConfidence*(n-1) + confidence) / n

	if m.TotalExecutions == 1 {
		m.MinLatencyMs = latencyMs
		m.MaxLatencyMs = latencyMs
	} else {
		if latencyMs < m.MinLatencyMs {
			m.MinLatencyMs = latencyMs
		}
		if latencyMs > m.MaxLatencyMs {
			m.MaxLatencyMs = latencyMs
		}
	}

	// Rolling short windows: the counter resets when its window lapses.
	if now.Sub(m.hourWindowStart).Hours() >= 1 {
		m.hourWindowStart = now
		m.ExecutionsLastHour = 0
	}
	if now.Sub(m.dayWindowStart).Hours() >= 24 {
		m.dayWindowStart = now
		m.ExecutionsLastDay = 0
	}
	m.ExecutionsLastHour++
	m.ExecutionsLastDay++

	m.LastExecutedAt = now
}

// Metrics returns a copy of the metrics for one route id.
func (r *registry) Metrics(id string) (RouteMetrics, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.metrics[id]
	if !ok {
		return RouteMetrics{}, false
	}
	return *m, true
}

// AllMetrics returns a copy of every route's metrics, sorted by route id.
func (r *registry) AllMetrics() []RouteMetrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RouteMetrics, 0, len(r.metrics))
	for _, m := range r.metrics {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RouteID < out[j].RouteID })
	return out
}

// TopRoutes returns the n best routes under the given criterion.
// avg_latency ranks ascending (fastest first); the others descending.
func (r *registry) TopRoutes(n int, by TopRoutesBy) []RouteMetrics {
	all := r.AllMetrics()

	switch by {
	case TopBySuccessRate:
		sort.Slice(all, func(i, j int) bool {
			ri, rj := all[i].SuccessRate(), all[j].SuccessRate()
			if ri != rj {
				return ri > rj
			}
			return all[i].RouteID < all[j].RouteID
		})
	case TopByAvgLatency:
		sort.Slice(all, func(i, j int) bool {
			if all[i].AvgLatencyMs != all[j].AvgLatencyMs {
				return all[i].AvgLatencyMs < all[j].AvgLatencyMs
			}
			return all[i].RouteID < all[j].RouteID
		})
	default: // TopByExecutions
		sort.Slice(all, func(i, j int) bool {
			if all[i].TotalExecutions != all[j].TotalExecutions {
				return all[i].TotalExecutions > all[j].TotalExecutions
			}
			return all[i].RouteID < all[j].RouteID
		})
	}

	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Summary rolls every route's metrics into one registry-wide view.
func (r *registry) Summary() MetricsSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := MetricsSummary{TotalRoutes: len(r.routes)}
	for _, entry := range r.routes {
		if entry.route.Enabled {
			s.EnabledRoutes++
		}
	}
	for _, m := range r.metrics {
		s.TotalExecutions += m.TotalExecutions
		s.TotalSuccesses += m.SuccessfulExecutions
		s.TotalFailures += m.FailedExecutions
	}
	if s.TotalExecutions > 0 {
		s.OverallRate = float64(s.TotalSuccesses) / float64(s.TotalExecutions)
	}
	return s
}
