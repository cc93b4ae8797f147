package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, outline.StatusOK, false)
	}

	snap := stats.Snapshot()
	if snap.Documents != 5 {
		t.Fatalf("expected documents=5, got %d", snap.Documents)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got %d %d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsCountsOutcomes(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(time.Millisecond, outline.StatusOK, false)
	stats.Record(time.Millisecond, outline.StatusOK, false)
	stats.Record(time.Millisecond, outline.StatusParseFailed, false)
	stats.Record(time.Millisecond, outline.StatusNoText, true)

	snap := stats.Snapshot()
	if snap.Failed != 1 {
		t.Errorf("expected failed=1, got %d", snap.Failed)
	}
	if snap.ByStatus[outline.StatusOK] != 2 || snap.ByStatus[outline.StatusParseFailed] != 1 || snap.ByStatus[outline.StatusNoText] != 1 {
		t.Errorf("unexpected status counts %v", snap.ByStatus)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	now := time.Now()
	stats := NewStats(10 * time.Minute)
	stats.now = func() time.Time { return now }
	stats.Record(100*time.Millisecond, outline.StatusOK, false)

	now = now.Add(11 * time.Minute)
	if snap := stats.Snapshot(); snap.Documents != 0 {
		t.Fatalf("expected documents=0 after prune, got %d", snap.Documents)
	}

	stats.Record(200*time.Millisecond, outline.StatusOK, false)
	snap := stats.Snapshot()
	if snap.Documents != 1 || snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected one fresh sample of 200ms, got %+v", snap)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(-10*time.Millisecond, outline.StatusOK, false)
	snap := stats.Snapshot()
	if snap.Documents != 1 {
		t.Fatalf("expected documents=1, got %d", snap.Documents)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats(0).Snapshot()
	if snap.Documents != 0 || snap.ByStatus == nil {
		t.Fatalf("expected empty snapshot with non-nil status map, got %+v", snap)
	}
}
