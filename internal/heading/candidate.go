package heading

import (
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/lines"
	"github.com/dgallion1/docoutline/internal/script"
	"github.com/dgallion1/docoutline/internal/textnorm"
)

// Candidate is a text line prepared for heading analysis. Accepted and Level
// are set by the pipeline once the line passes scoring and classification.
type Candidate struct {
	lines.Line

	Clean      string // NFKC with collapsed whitespace
	Normalized string
	Folded     string
	Script     script.Script

	Score    int
	Accepted bool
	Level    doctree.Level
}

// NewCandidate derives the normalized forms and script class of a line.
func NewCandidate(l lines.Line) *Candidate {
	clean := textnorm.Clean(l.Text)
	normalized := textnorm.Normalize(l.Text)
	return &Candidate{
		Line:       l,
		Clean:      clean,
		Normalized: normalized,
		Folded:     textnorm.Fold(normalized),
		Script:     script.Detect(normalized),
	}
}

// Profiles returns the script tables that apply to the candidate.
func (c *Candidate) Profiles() script.Profiles {
	return script.For(c.Script)
}

// Len is the rune length of the normalized text.
func (c *Candidate) Len() int {
	return textnorm.RuneLen(c.Normalized)
}

// Stats are document-wide font size statistics, computed once per document.
type Stats struct {
	AvgSize float64
	MaxSize float64
}

// ComputeStats averages line sizes over lines with a positive size.
func ComputeStats(cands []*Candidate) Stats {
	var st Stats
	n := 0
	for _, c := range cands {
		if c.Size <= 0 {
			continue
		}
		st.AvgSize += c.Size
		if c.Size > st.MaxSize {
			st.MaxSize = c.Size
		}
		n++
	}
	if n > 0 {
		st.AvgSize /= float64(n)
	}
	return st
}
