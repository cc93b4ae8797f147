package heading

import (
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer(DefaultConfig())
	contrast := Stats{AvgSize: 10, MaxSize: 20}

	tests := []struct {
		name string
		c    *Candidate
		st   Stats
		want int
	}{
		{"keyword left titlecase", cand("Results", 10, 0, 1, 72), contrast, 5},
		{"plain body", cand("revenue grew in most regions", 10, 0, 1, 72), contrast, 1},
		{"indented body", cand("revenue grew in most regions", 10, 0, 1, 200), contrast, 0},
		{"all caps", cand("PROJECT PLAN", 10, 0, 1, 200), contrast, 3},
		{"every signal", cand("1. Introduction", 24, doctree.FlagBold, 1, 72), Stats{AvgSize: 11, MaxSize: 24}, 17},
		{"near max on uniform sizes", cand("Project Plan", 11, 0, 1, 72), Stats{AvgSize: 11, MaxSize: 11}, 5},
		{"cjk credited title case", cand("第一章 緒論", 10, 0, 1, 72), contrast, 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Score(tc.c, tc.st))
		})
	}
}

func TestScorer_IsHeading(t *testing.T) {
	s := NewScorer(DefaultConfig())
	contrast := Stats{AvgSize: 10, MaxSize: 20}

	tests := []struct {
		name string
		c    *Candidate
		want bool
	}{
		{"keyword", cand("Results", 10, 0, 1, 72), true},
		{"numbered", cand("2.1 Data Collection", 10, 0, 3, 72), true},
		{"body", cand("revenue grew in most regions", 10, 0, 1, 72), false},
		{"prose", cand("This is a long sentence that ends with a period.", 10, doctree.FlagBold, 1, 72), false},
		{"too many commas", cand("Apples, Oranges, Pears, Plums", 10, doctree.FlagBold, 1, 72), false},
		{"too short", cand("AB", 30, doctree.FlagBold, 1, 72), false},
		{"too long", cand("Results "+strings.Repeat("x", 130), 10, doctree.FlagBold, 1, 72), false},
		{"excluded", cand("Page 3", 30, doctree.FlagBold, 1, 72), false},
		{"cjk lower bar", cand("研究", 10, doctree.FlagBold, 1, 200), true},
		{"latin same signals", cand("Data Sources", 10, doctree.FlagBold, 1, 200), false},
		{"cjk prose", cand("本研究では人工知能の応用について詳細に検討し、その結果を報告する。", 10, doctree.FlagBold, 1, 72), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.IsHeading(tc.c, contrast))
		})
	}
}

func TestScorer_WeightsAreConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Keyword = 0
	s := NewScorer(cfg)
	c := cand("Results", 10, 0, 1, 72)
	st := Stats{AvgSize: 10, MaxSize: 20}
	assert.Equal(t, 2, s.Score(c, st))
	assert.False(t, s.IsHeading(c, st))

	cfg.Threshold = 2
	assert.True(t, NewScorer(cfg).IsHeading(c, st))
}

func TestScorer_NearMaxContrastSetting(t *testing.T) {
	uniform := Stats{AvgSize: 11, MaxSize: 11}
	c := cand("Project Plan", 11, 0, 1, 72)

	tests := []struct {
		name     string
		contrast bool
		score    int
		heading  bool
	}{
		{"weight table only", false, 5, true},
		{"contrast required", true, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.NearMaxRequiresContrast = tt.contrast
			s := NewScorer(cfg)
			assert.Equal(t, tt.score, s.Score(c, uniform))
			assert.Equal(t, tt.heading, s.IsHeading(c, uniform))
		})
	}
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats([]*Candidate{
		cand("a", 10, 0, 1, 0),
		cand("b", 20, 0, 1, 0),
		cand("c", 0, 0, 1, 0),
	})
	assert.Equal(t, 15.0, st.AvgSize)
	assert.Equal(t, 20.0, st.MaxSize)

	assert.Equal(t, Stats{}, ComputeStats(nil))
}
