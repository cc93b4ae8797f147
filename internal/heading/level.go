package heading

import (
	"math"
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Strategy proposes a level for a candidate, or declines with ok=false.
type Strategy interface {
	Level(c *Candidate) (lvl doctree.Level, ok bool)
}

var levels = [3]doctree.Level{doctree.H1, doctree.H2, doctree.H3}

// PatternStrategy reads the level from numbering and chapter/section markers.
type PatternStrategy struct{}

func (PatternStrategy) Level(c *Candidate) (doctree.Level, bool) {
	n, ok := c.Profiles().LevelOf(c.Clean)
	if !ok {
		return "", false
	}
	return levels[n-1], true
}

// SizeRankStrategy ranks a candidate's font size among the distinct sizes of
// all accepted candidates in the document.
type SizeRankStrategy struct {
	sizes     []float64 // distinct, descending
	tolerance float64
}

// NewSizeRankStrategy collects the distinct sizes of the accepted candidates.
func NewSizeRankStrategy(accepted []*Candidate, tolerance float64) SizeRankStrategy {
	seen := make(map[float64]struct{})
	var sizes []float64
	for _, c := range accepted {
		if c.Size <= 0 {
			continue
		}
		s := roundSize(c.Size)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	return SizeRankStrategy{sizes: sizes, tolerance: tolerance}
}

func (s SizeRankStrategy) Level(c *Candidate) (doctree.Level, bool) {
	if len(s.sizes) == 0 || c.Size <= 0 {
		return "", false
	}
	size := roundSize(c.Size)
	if len(s.sizes) <= 2 {
		if size >= s.sizes[0] {
			return doctree.H1, true
		}
		return doctree.H2, true
	}
	top := s.sizes[:3]
	for i, ref := range top {
		if size == ref {
			return levels[i], true
		}
	}
	best, bestDist := -1, math.Inf(1)
	for i, ref := range top {
		d := math.Abs(size - ref)
		if d <= ref*s.tolerance && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return levels[best], true
	}
	return doctree.H3, true
}

func roundSize(size float64) float64 {
	return math.Round(size*10) / 10
}

// Fixed always answers with its level. It terminates a classifier chain.
type Fixed doctree.Level

func (f Fixed) Level(*Candidate) (doctree.Level, bool) {
	return doctree.Level(f), true
}

// Classifier tries each strategy in order; the first opinion wins.
type Classifier []Strategy

// NewClassifier builds the pattern -> size rank -> H3 chain for a document.
func NewClassifier(accepted []*Candidate, cfg Config) Classifier {
	return Classifier{
		PatternStrategy{},
		NewSizeRankStrategy(accepted, cfg.LevelSizeTolerance),
		Fixed(doctree.H3),
	}
}

func (cl Classifier) Classify(c *Candidate) doctree.Level {
	for _, s := range cl {
		if lvl, ok := s.Level(c); ok {
			return lvl
		}
	}
	return doctree.H3
}

// ClassifyLevel assigns a level to c given every accepted candidate of the
// document. Callers classifying many candidates should reuse a Classifier.
func ClassifyLevel(c *Candidate, accepted []*Candidate, cfg Config) doctree.Level {
	return NewClassifier(accepted, cfg).Classify(c)
}
