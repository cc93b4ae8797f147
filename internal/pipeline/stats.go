package pipeline

import (
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

type sample struct {
	at     time.Time
	ms     int64
	status outline.Status
	failed bool
}

// StatsSnapshot aggregates the documents processed within the window.
type StatsSnapshot struct {
	Documents int                    `json:"documents"`
	Failed    int                    `json:"failed"`
	ByStatus  map[outline.Status]int `json:"by_status"`
	MinMs     int64                  `json:"min_ms"`
	MaxMs     int64                  `json:"max_ms"`
	AvgMs     float64                `json:"avg_ms"`
	P50Ms     float64                `json:"p50_ms"`
	P95Ms     float64                `json:"p95_ms"`
	P99Ms     float64                `json:"p99_ms"`
}

// Stats tracks per-document extraction latency and outcome within a
// rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one processed document. failed marks documents for which no
// result could be emitted.
func (s *Stats) Record(d time.Duration, status outline.Status, failed bool) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, ms: ms, status: status, failed: failed})
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	snap := StatsSnapshot{ByStatus: map[outline.Status]int{}}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.ms)
		sum += sm.ms
		if sm.failed {
			snap.Failed++
		}
		if sm.status != "" {
			snap.ByStatus[sm.status]++
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Documents = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[n-1])
	}
	index := float64(n-1) * pct / 100
	lower := int(index)
	if lower+1 >= n {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(index-float64(lower))
}
