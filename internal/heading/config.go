// Package heading decides which text lines are headings, assigns their
// levels, picks the document title and collapses duplicate headings.
package heading

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Weights are the additive contributions of each heading signal.
type Weights struct {
	Pattern   int `yaml:"pattern"`
	Keyword   int `yaml:"keyword"`
	Size      int `yaml:"size"`
	Bold      int `yaml:"bold"`
	LeftAlign int `yaml:"left_align"`
	TitleCase int `yaml:"title_case"`
	AllCaps   int `yaml:"all_caps"`
	NearMax   int `yaml:"near_max"`
}

// Bounds is an inclusive rune-length window.
type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (b Bounds) Contains(n int) bool { return n >= b.Min && n <= b.Max }

// Config holds every tunable of the heading heuristics. A Config is treated
// as immutable once handed to a Scorer or Pipeline.
type Config struct {
	Weights      Weights `yaml:"weights"`
	Threshold    int     `yaml:"threshold"`
	CJKThreshold int     `yaml:"cjk_threshold"`

	Length    Bounds `yaml:"length"`
	CJKLength Bounds `yaml:"cjk_length"`

	ProseMinLen    int `yaml:"prose_min_len"`
	CJKProseMinLen int `yaml:"cjk_prose_min_len"`
	MaxCommas      int `yaml:"max_commas"`

	SizeRatio      float64 `yaml:"size_ratio"`
	NearMaxRatio   float64 `yaml:"near_max_ratio"`
	// NearMaxRequiresContrast withholds the near-max weight when the largest
	// size is not SizeRatio above the average.
	NearMaxRequiresContrast bool `yaml:"near_max_requires_contrast"`
	LeftMargin     float64 `yaml:"left_margin"`
	TitleCaseRatio float64 `yaml:"title_case_ratio"`
	AllCapsMaxLen  int     `yaml:"all_caps_max_len"`

	MinAlnumRatio      float64 `yaml:"min_alnum_ratio"`
	DividerMaxDistinct int     `yaml:"divider_max_distinct"`
	DividerMinRepeat   int     `yaml:"divider_min_repeat"`

	LevelSizeTolerance float64 `yaml:"level_size_tolerance"`

	TitlePages          int     `yaml:"title_pages"`
	TitleSizeTolerance  float64 `yaml:"title_size_tolerance"`
	TitleLeftOffset     float64 `yaml:"title_left_offset"`
	TitleLength         Bounds  `yaml:"title_length"`
	CJKTitleLength      Bounds  `yaml:"cjk_title_length"`
	TitleProseMinLen    int     `yaml:"title_prose_min_len"`
	CJKTitleProseMinLen int     `yaml:"cjk_title_prose_min_len"`

	DedupSimilarity float64 `yaml:"dedup_similarity"`
	DedupPageWindow int     `yaml:"dedup_page_window"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Pattern:   4,
			Keyword:   3,
			Size:      3,
			Bold:      2,
			LeftAlign: 1,
			TitleCase: 1,
			AllCaps:   2,
			NearMax:   3,
		},
		Threshold:    4,
		CJKThreshold: 3,

		Length:    Bounds{Min: 3, Max: 120},
		CJKLength: Bounds{Min: 2, Max: 150},

		ProseMinLen:    30,
		CJKProseMinLen: 20,
		MaxCommas:      2,

		SizeRatio:      1.15,
		NearMaxRatio:   0.85,
		LeftMargin:     150,
		TitleCaseRatio: 0.5,
		AllCapsMaxLen:  50,

		MinAlnumRatio:      0.4,
		DividerMaxDistinct: 2,
		DividerMinRepeat:   5,

		LevelSizeTolerance: 0.05,

		TitlePages:          3,
		TitleSizeTolerance:  0.05,
		TitleLeftOffset:     20,
		TitleLength:         Bounds{Min: 5, Max: 120},
		CJKTitleLength:      Bounds{Min: 2, Max: 40},
		TitleProseMinLen:    30,
		CJKTitleProseMinLen: 40,

		DedupSimilarity: 0.8,
		DedupPageWindow: 2,
	}
}

// LoadConfig reads a YAML document over DefaultConfig. Keys absent from the
// document keep their defaults; unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode heuristics: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Threshold <= 0 || c.CJKThreshold <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	if c.Length.Min < 1 || c.Length.Max < c.Length.Min {
		return fmt.Errorf("invalid length bounds %d..%d", c.Length.Min, c.Length.Max)
	}
	if c.CJKLength.Min < 1 || c.CJKLength.Max < c.CJKLength.Min {
		return fmt.Errorf("invalid cjk length bounds %d..%d", c.CJKLength.Min, c.CJKLength.Max)
	}
	if c.SizeRatio <= 0 || c.NearMaxRatio <= 0 || c.NearMaxRatio > 1 {
		return fmt.Errorf("size ratios out of range")
	}
	if c.LevelSizeTolerance < 0 || c.TitleSizeTolerance < 0 {
		return fmt.Errorf("size tolerances must not be negative")
	}
	if c.DedupSimilarity <= 0 || c.DedupSimilarity > 1 {
		return fmt.Errorf("dedup similarity must be in (0, 1]")
	}
	if c.TitlePages < 1 {
		return fmt.Errorf("title pages must be at least 1")
	}
	return nil
}
