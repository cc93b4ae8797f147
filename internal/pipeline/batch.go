package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// BatchOptions configures a directory run.
type BatchOptions struct {
	InputDir  string
	OutputDir string
	Format    outline.Format
	Workers   int
	// Report, when set, is called once per document as it finishes.
	// Calls are serialized.
	Report func(FileReport)
}

// FileReport is the per-document outcome of a directory run.
type FileReport struct {
	Input  string
	Output string // empty when nothing was written
	Status outline.Status
	Err    error
}

// OK reports whether an output file was written.
func (r FileReport) OK() bool { return r.Err == nil }

// Summary counts the documents of a directory run. Degraded documents got a
// sentinel result written and are also counted in Succeeded.
type Summary struct {
	Succeeded int
	Degraded  int
	Failed    int
}

func (s Summary) Total() int { return s.Succeeded + s.Failed }

// ErrNoInput is returned when the input directory holds no supported files.
var ErrNoInput = errors.New("no supported documents found")

// RunDir outlines every supported document directly inside opts.InputDir
// and writes one output file per document into opts.OutputDir. A failure
// is contained to its document; the returned error is reserved for
// problems with the directories themselves.
func RunDir(ctx context.Context, w *Worker, opts BatchOptions, log *slog.Logger) (Summary, error) {
	inputs, err := discover(opts.InputDir)
	if err != nil {
		return Summary{}, err
	}
	if len(inputs) == 0 {
		return Summary{}, fmt.Errorf("%w in %s", ErrNoInput, opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}
	log.Info("processing documents", "count", len(inputs), "input", opts.InputDir, "output", opts.OutputDir)

	outputs := outputNames(inputs, opts.Format)
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		summary Summary
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, workers)

	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(in, out string) {
			defer func() { <-sem; wg.Done() }()
			rep := processFile(w, in, filepath.Join(opts.OutputDir, out), opts.Format)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case !rep.OK():
				summary.Failed++
				log.Error("document failed", "document", in, "error", rep.Err)
			case rep.Status != outline.StatusOK:
				summary.Succeeded++
				summary.Degraded++
			default:
				summary.Succeeded++
			}
			if opts.Report != nil {
				opts.Report(rep)
			}
		}(in, outputs[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// processFile outlines one file and writes it. Nothing is written unless
// the result validated and rendered completely.
func processFile(w *Worker, in, out string, format outline.Format) FileReport {
	rep := FileReport{Input: in}
	data, err := os.ReadFile(in)
	if err != nil {
		rep.Err = fmt.Errorf("read: %w", err)
		return rep
	}

	r := w.Document(filepath.Base(in), data)
	rep.Status = r.Status
	if r.Error != "" {
		rep.Err = errors.New(r.Error)
		return rep
	}

	var buf bytes.Buffer
	if err := outline.Render(&buf, *r.Result, format); err != nil {
		rep.Err = fmt.Errorf("render: %w", err)
		return rep
	}
	if err := writeFileAtomic(out, buf.Bytes()); err != nil {
		rep.Err = err
		return rep
	}
	rep.Output = out
	return rep
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// discover lists supported files directly inside dir, sorted by name.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// outputNames maps each input to "<stem><ext>". Inputs sharing a stem
// ("a.pdf", "a.docx") keep their extension: "a.pdf.json".
func outputNames(inputs []string, format outline.Format) []string {
	stems := make(map[string]int, len(inputs))
	for _, in := range inputs {
		stems[stem(in)]++
	}
	names := make([]string, len(inputs))
	for i, in := range inputs {
		base := stem(in)
		if stems[base] > 1 {
			base = filepath.Base(in)
		}
		names[i] = base + format.Extension()
	}
	return names
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
