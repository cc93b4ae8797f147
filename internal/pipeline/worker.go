package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// DocResult is the outcome of one document. Result is nil when Error is
// set: a result that cannot be validated is never emitted.
type DocResult struct {
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash"`
	Status      outline.Status  `json:"status,omitempty"`
	Result      *doctree.Result `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
}

// Degraded reports a result that carries a sentinel title.
func (r DocResult) Degraded() bool {
	return r.Error == "" && r.Status != "" && r.Status != outline.StatusOK
}

// Worker parses and outlines documents. It holds no per-document state.
type Worker struct {
	extractor  *outline.Extractor
	parserOpts parser.Options
	stats      *Stats
	log        *slog.Logger
}

func NewWorker(extractor *outline.Extractor, opts parser.Options, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		extractor:  extractor,
		parserOpts: opts,
		stats:      stats,
		log:        log,
	}
}

// Stats returns the worker's latency tracker.
func (w *Worker) Stats() *Stats {
	return w.stats
}

// Outline runs one document through parsing and extraction and validates
// the result. A non-nil error means the document must be reported failed.
func (w *Worker) Outline(filename string, data []byte) (outline.Outcome, error) {
	p, err := parser.ForFile(filename, w.parserOpts)
	if err != nil {
		return outline.Outcome{}, err
	}
	out := w.extractor.Process(filename, func() (*doctree.Document, error) {
		return p.Parse(bytes.NewReader(data), filename)
	})
	if err := outline.Validate(out.Result); err != nil {
		w.log.Error("extracted outline failed validation", "document", filename, "error", err)
		return out, err
	}
	return out, nil
}

// Document outlines one document and records its latency and outcome.
func (w *Worker) Document(filename string, data []byte) DocResult {
	start := time.Now()
	out, err := w.Outline(filename, data)
	elapsed := time.Since(start)

	r := DocResult{
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		Status:      out.Status,
		DurationMs:  elapsed.Milliseconds(),
	}
	if err != nil {
		r.Error = err.Error()
	} else {
		res := out.Result
		r.Result = &res
	}
	if w.stats != nil {
		w.stats.Record(elapsed, out.Status, err != nil)
	}
	return r
}

// Process outlines every document of a job in order. Cancellation stops
// the job between documents.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	files := job.Files()

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("job cancelled", "processed", i, "total", len(files))
			job.AddError(fmt.Sprintf("cancelled after %d of %d documents", i, len(files)))
			break
		}
		job.SetStatus(StatusExtracting, fmt.Sprintf("document %d/%d: %s", i+1, len(files), f.Filename))
		r := w.Document(f.Filename, f.Data)
		if r.Error != "" {
			log.Error("document failed", "document", f.Filename, "error", r.Error)
		}
		job.AddResult(r)
	}

	job.releaseFiles()
	status := job.finish()
	snap := job.Snapshot()
	log.Info("job finished", "status", status,
		"succeeded", snap.Progress.Succeeded,
		"degraded", snap.Progress.Degraded,
		"failed", snap.Progress.Failed)
}
