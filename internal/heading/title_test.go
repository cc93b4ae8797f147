package heading

import (
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/stretchr/testify/assert"
)

func TestTitleExtractor_LargestLine(t *testing.T) {
	cands := []*Candidate{
		cand("Acme Corp", 12, 0, 1, 72),
		cand("Annual Report 2024", 24, doctree.FlagBold, 1, 180),
		cand("1. Introduction", 18, doctree.FlagBold, 1, 72),
		cand("the company grew steadily over the last fiscal year.", 10, 0, 1, 72),
		cand("Gigantic Back Cover Text", 40, 0, 9, 72),
	}
	assert.Equal(t, "Annual Report 2024", NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_ScoresWithinSizeBand(t *testing.T) {
	cands := []*Candidate{
		cand("Chapter 1: draft", 24, 0, 1, 72),
		cand("Designing Data Pipelines", 23.5, 0, 1, 160),
	}
	assert.Equal(t, "Designing Data Pipelines", NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_TieKeepsFirst(t *testing.T) {
	cands := []*Candidate{
		cand("First Great Title", 20, 0, 1, 100),
		cand("Second Great Title", 20, 0, 1, 100),
	}
	assert.Equal(t, "First Great Title", NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_NumberedHeadingNeverTitle(t *testing.T) {
	cands := []*Candidate{
		cand("1. Introduction", 24, doctree.FlagBold, 1, 72),
	}
	assert.Equal(t, doctree.TitleUntitled, NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_ProseNeverTitle(t *testing.T) {
	cands := []*Candidate{
		cand("Page 1", 30, 0, 1, 72),
		cand("the system must process every request within two seconds.", 10, 0, 1, 72),
	}
	assert.Equal(t, doctree.TitleUntitled, NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_FunctionWordTitle(t *testing.T) {
	cands := []*Candidate{
		cand("The Art of Programming", 28, 0, 1, 150),
		cand("Body text goes here", 10, 0, 1, 72),
	}
	assert.Equal(t, "The Art of Programming", NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_CJK(t *testing.T) {
	cands := []*Candidate{
		cand("人工知能の研究", 22, 0, 1, 200),
		cand("第一章 緒論", 16, 0, 2, 72),
	}
	assert.Equal(t, "人工知能の研究", NewTitleExtractor(DefaultConfig()).Extract(cands))
}

func TestTitleExtractor_Empty(t *testing.T) {
	assert.Equal(t, doctree.TitleUntitled, NewTitleExtractor(DefaultConfig()).Extract(nil))
}
