package heading

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/textnorm"
)

// Scorer applies the gating rules and additive signal weights of Config.
type Scorer struct {
	cfg    Config
	filter Filter
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg, filter: NewFilter(cfg)}
}

// Rejected reports whether c fails a hard gate: length, exclusion, prose
// shape or clause commas. Rejected lines are never headings.
func (s *Scorer) Rejected(c *Candidate) bool {
	cjk := c.Script.IsCJK()
	bounds := s.cfg.Length
	if cjk {
		bounds = s.cfg.CJKLength
	}
	if !bounds.Contains(c.Len()) {
		return true
	}
	if s.filter.Excluded(c.Normalized) {
		return true
	}
	if isProse(c, s.cfg.ProseMinLen, s.cfg.CJKProseMinLen) {
		return true
	}
	return c.Profiles().CountCommas(c.Clean) > s.cfg.MaxCommas
}

// Score sums the weights of every signal c carries. Gates are not applied.
func (s *Scorer) Score(c *Candidate, st Stats) int {
	w := s.cfg.Weights
	cjk := c.Script.IsCJK()
	profiles := c.Profiles()
	score := 0

	if profiles.MatchShape(c.Clean) {
		score += w.Pattern
	}
	if profiles.HasKeyword(c.Folded) {
		score += w.Keyword
	}
	if st.AvgSize > 0 && c.Size/st.AvgSize >= s.cfg.SizeRatio {
		score += w.Size
	}
	if c.IsBold() {
		score += w.Bold
	}
	if c.BBox.X0 < s.cfg.LeftMargin {
		score += w.LeftAlign
	}
	if cjk || textnorm.TitleCaseRatio(c.Normalized) >= s.cfg.TitleCaseRatio {
		score += w.TitleCase
	}
	if !cjk && textnorm.IsAllCaps(c.Normalized) && c.Len() <= s.cfg.AllCapsMaxLen {
		score += w.AllCaps
	}
	if st.MaxSize > 0 && c.Size >= st.MaxSize*s.cfg.NearMaxRatio && s.contrast(st) {
		score += w.NearMax
	}
	return score
}

func (s *Scorer) contrast(st Stats) bool {
	return !s.cfg.NearMaxRequiresContrast || st.MaxSize >= st.AvgSize*s.cfg.SizeRatio
}

// Threshold returns the acceptance threshold for c's script.
func (s *Scorer) Threshold(c *Candidate) int {
	if c.Script.IsCJK() {
		return s.cfg.CJKThreshold
	}
	return s.cfg.Threshold
}

// IsHeading scores c, records the score, and reports acceptance.
func (s *Scorer) IsHeading(c *Candidate, st Stats) bool {
	if s.Rejected(c) {
		return false
	}
	c.Score = s.Score(c, st)
	return c.Score >= s.Threshold(c)
}

// isProse spots body sentences: long non-CJK lines ending in a single period,
// or long CJK lines ending in a sentence mark.
func isProse(c *Candidate, minLen, cjkMinLen int) bool {
	n := textnorm.RuneLen(c.Clean)
	if c.Script.IsCJK() {
		return n > cjkMinLen && c.Profiles().EndsWithTerminal(c.Clean)
	}
	return n > minLen && strings.HasSuffix(c.Clean, ".") && !strings.HasSuffix(c.Clean, "..")
}
