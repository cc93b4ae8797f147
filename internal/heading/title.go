package heading

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/textnorm"
)

// numberedLine matches digit-led section numbering ("1.", "2.3", "(4)", "1概要").
// Such lines are headings, never titles.
var numberedLine = regexp.MustCompile(`^\(?\d{1,2}([.)]\d{1,2})*[.)]?(\s|$|[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}])`)

// TitleExtractor picks the most title-like line from the first pages.
type TitleExtractor struct {
	cfg    Config
	filter Filter
}

func NewTitleExtractor(cfg Config) *TitleExtractor {
	return &TitleExtractor{cfg: cfg, filter: NewFilter(cfg)}
}

// Extract returns the document title, or TitleUntitled when no early line
// is title-worthy. Body sentences are never titles.
func (t *TitleExtractor) Extract(cands []*Candidate) string {
	var early []*Candidate
	for _, c := range cands {
		if c.Page <= t.cfg.TitlePages {
			early = append(early, c)
		}
	}

	var pool []*Candidate
	maxSize := 0.0
	for _, c := range early {
		if !t.titleWorthy(c) {
			continue
		}
		pool = append(pool, c)
		if c.Size > maxSize {
			maxSize = c.Size
		}
	}

	var best *Candidate
	bestScore := -1
	for _, c := range pool {
		if c.Size < maxSize*(1-t.cfg.TitleSizeTolerance) {
			continue
		}
		if s := t.score(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	if best == nil {
		return doctree.TitleUntitled
	}
	return strings.TrimSpace(best.Clean)
}

// usable drops boilerplate and numbered headings. Function-word starts are
// allowed: "The Art of ..." is a fine title.
func (t *TitleExtractor) usable(c *Candidate) bool {
	switch t.filter.Check(c.Normalized) {
	case NotExcluded, ReasonFunctionWord:
	default:
		return false
	}
	return !numberedLine.MatchString(c.Clean)
}

func (t *TitleExtractor) titleWorthy(c *Candidate) bool {
	if c.Size <= 0 || !t.usable(c) {
		return false
	}
	return !isProse(c, t.cfg.TitleProseMinLen, t.cfg.CJKTitleProseMinLen)
}

func (t *TitleExtractor) score(c *Candidate) int {
	cjk := c.Script.IsCJK()
	score := 0
	if cjk || textnorm.TitleCaseRatio(c.Normalized) >= t.cfg.TitleCaseRatio {
		score++
	}
	if c.BBox.X0 > t.cfg.TitleLeftOffset {
		score++
	}
	window := t.cfg.TitleLength
	if cjk {
		window = t.cfg.CJKTitleLength
	}
	if window.Contains(c.Len()) {
		score++
	}
	if !c.Profiles().MatchShape(c.Clean) {
		score++
	}
	return score
}
