package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	a := NewJob([]FileInput{{Filename: "a.pdf"}, {Filename: "b.pdf"}})
	b := NewJob(nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if len(a.ID) != 36 {
		t.Errorf("expected UUID string, got %q", a.ID)
	}
	if a.Status != StatusQueued || a.Progress.TotalFiles != 2 {
		t.Errorf("unexpected initial state %+v", a.Snapshot())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob(nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "document 1/2: a.pdf"},
		{StatusExtracting, "document 2/2: b.pdf"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddResultCounts(t *testing.T) {
	res := doctree.Sentinel(doctree.TitleNoTextFound)
	job := NewJob(make([]FileInput, 3))
	job.AddResult(DocResult{Filename: "a.pdf", Status: outline.StatusOK, Result: &res})
	job.AddResult(DocResult{Filename: "b.pdf", Status: outline.StatusNoText, Result: &res})
	job.AddResult(DocResult{Filename: "c.csv", Error: "unsupported file extension: .csv"})

	snap := job.Snapshot()
	p := snap.Progress
	if p.FilesProcessed != 3 || p.Succeeded != 1 || p.Degraded != 1 || p.Failed != 1 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if len(p.Errors) != 1 || p.Errors[0] != "c.csv: unsupported file extension: .csv" {
		t.Errorf("unexpected errors %q", p.Errors)
	}
	if len(snap.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(snap.Results))
	}
}

func TestJob_Finish(t *testing.T) {
	ok := DocResult{Status: outline.StatusOK}
	bad := DocResult{Error: "boom"}
	tests := []struct {
		name    string
		total   int
		results []DocResult
		want    JobStatus
	}{
		{"all ok", 2, []DocResult{ok, ok}, StatusCompleted},
		{"some failed", 2, []DocResult{ok, bad}, StatusPartial},
		{"all failed", 2, []DocResult{bad, bad}, StatusFailed},
		{"cancelled midway", 3, []DocResult{ok}, StatusPartial},
		{"cancelled before start", 3, nil, StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJob(make([]FileInput, tt.total))
			for _, r := range tt.results {
				job.AddResult(r)
			}
			if got := job.finish(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil slices.
	job := NewJob(nil)
	snap := job.Snapshot()
	if snap.Progress.Errors == nil || snap.Results == nil {
		t.Error("expected non-nil slices in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob(nil)
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob(nil)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := NewJob(nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}
