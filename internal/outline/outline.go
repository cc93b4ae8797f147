// Package outline runs the heading pipeline over a parsed document and
// guarantees a well-formed result for every input.
package outline

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/heading"
	"github.com/dgallion1/docoutline/internal/lines"
	"github.com/dgallion1/docoutline/internal/textnorm"
)

// ErrParse marks a document the source parser could not read.
var ErrParse = errors.New("parse failure")

// Status tells how a document left the pipeline.
type Status string

const (
	StatusOK          Status = "ok"
	StatusEmpty       Status = "empty"
	StatusNoText      Status = "no_text"
	StatusParseFailed Status = "parse_failed"
)

// Outcome is the result of processing one document.
type Outcome struct {
	Result     doctree.Result
	Status     Status
	Err        error // set when Status is StatusParseFailed
	Lines      int
	Candidates int
}

// Extractor sequences line assembly, scoring, classification, title
// extraction and deduplication. It holds no per-document state and is safe
// for concurrent use.
type Extractor struct {
	cfg    heading.Config
	filter heading.Filter
	scorer *heading.Scorer
	titles *heading.TitleExtractor
	dedup  heading.Deduplicator
	log    *slog.Logger
}

func NewExtractor(cfg heading.Config, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		cfg:    cfg,
		filter: heading.NewFilter(cfg),
		scorer: heading.NewScorer(cfg),
		titles: heading.NewTitleExtractor(cfg),
		dedup:  heading.NewDeduplicator(cfg),
		log:    log,
	}
}

// Process parses a document with parse and extracts its outline. Parser
// errors and panics are contained: the outcome then carries the parse-error
// sentinel result and Err wraps ErrParse.
func (e *Extractor) Process(name string, parse func() (*doctree.Document, error)) (out Outcome) {
	log := e.log.With("document", name)
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic: %v", ErrParse, r)
			log.Error("document processing panicked", "error", err)
			out = Outcome{Result: doctree.Sentinel(doctree.TitleParseError), Status: StatusParseFailed, Err: err}
		}
	}()

	doc, err := parse()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParse, err)
		log.Error("parse failed", "error", err)
		return Outcome{Result: doctree.Sentinel(doctree.TitleParseError), Status: StatusParseFailed, Err: err}
	}
	out = e.Extract(doc)
	switch out.Status {
	case StatusEmpty:
		log.Warn("empty document")
	case StatusNoText:
		log.Warn("no extractable text", "lines", out.Lines)
	default:
		log.Info("outline extracted", "headings", len(out.Result.Outline), "lines", out.Lines, "candidates", out.Candidates)
	}
	return out
}

// Extract runs the pipeline over doc. It never panics and always returns a
// result that passes Validate.
func (e *Extractor) Extract(doc *doctree.Document) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Result: doctree.Sentinel(doctree.TitleParseError),
				Status: StatusParseFailed,
				Err:    fmt.Errorf("%w: panic: %v", ErrParse, r),
			}
		}
	}()

	if doc == nil || doc.SpanCount() == 0 {
		return Outcome{Result: doctree.Sentinel(doctree.TitleEmptyDocument), Status: StatusEmpty}
	}

	cands := e.extracted(doc)
	if !e.anySurvivor(cands) {
		return Outcome{Result: doctree.Sentinel(doctree.TitleNoTextFound), Status: StatusNoText, Lines: len(cands)}
	}

	title, entries, accepted := e.classified(cands)
	entries = e.dedup.Dedupe(entries)
	sortEntries(entries)

	return Outcome{
		Result:     doctree.Result{Title: title, Outline: entries},
		Status:     StatusOK,
		Lines:      len(cands),
		Candidates: accepted,
	}
}

// extracted assembles lines and derives their normalized forms. Lines with
// no usable size or no text left after normalization are dropped.
func (e *Extractor) extracted(doc *doctree.Document) []*heading.Candidate {
	var cands []*heading.Candidate
	for _, l := range lines.FromDocument(doc) {
		if l.Size <= 0 {
			continue
		}
		c := heading.NewCandidate(l)
		if c.Normalized == "" {
			continue
		}
		cands = append(cands, c)
	}
	return cands
}

func (e *Extractor) anySurvivor(cands []*heading.Candidate) bool {
	for _, c := range cands {
		if !e.filter.Excluded(c.Normalized) {
			return true
		}
	}
	return false
}

// classified picks the title, accepts and levels headings, and drops any
// heading that repeats the title.
func (e *Extractor) classified(cands []*heading.Candidate) (string, []doctree.HeadingEntry, int) {
	stats := heading.ComputeStats(cands)
	title := e.titles.Extract(cands)
	titleKey := textnorm.Comparable(title)

	var accepted []*heading.Candidate
	for _, c := range cands {
		if e.scorer.IsHeading(c, stats) {
			c.Accepted = true
			accepted = append(accepted, c)
		}
	}

	classifier := heading.NewClassifier(accepted, e.cfg)
	entries := make([]doctree.HeadingEntry, 0, len(accepted))
	for _, c := range accepted {
		c.Level = classifier.Classify(c)
		text := strings.TrimSpace(c.Text)
		if textnorm.Comparable(text) == titleKey {
			continue
		}
		entries = append(entries, doctree.HeadingEntry{Level: c.Level, Text: text, Page: c.Page})
	}
	return title, entries, len(accepted)
}

// sortEntries orders by page, then level, keeping discovery order for ties.
func sortEntries(entries []doctree.HeadingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		return entries[i].Level.Rank() < entries[j].Level.Rank()
	})
}
