package script

import (
	"regexp"
	"strings"
)

// Profile is the heuristic table for one script. Text handed to a profile is
// expected to be NFKC-normalized with collapsed whitespace; keyword and
// function-word lookups expect case-folded input.
type Profile struct {
	Name string

	// Shapes are heading-shape patterns (numbered, lettered, chapter markers).
	Shapes []*regexp.Regexp

	// Levels holds the H1, H2 and H3 marker patterns, in that order.
	Levels [3][]*regexp.Regexp

	Keywords []string

	// SubstringKeywords matches keywords anywhere in the text instead of on
	// whole-word boundaries. Scripts written without spaces need this.
	SubstringKeywords bool

	FunctionWords map[string]struct{}

	// Commas are the clause-separating comma characters.
	Commas string

	// Terminals are the sentence-ending marks used to spot prose.
	Terminals string
}

// Profiles is the ordered set of profiles that apply to a piece of text.
type Profiles []*Profile

var registry = map[Script]Profiles{
	Latin:    {commonProfile, latinProfile},
	Cyrillic: {commonProfile, cyrillicProfile},
	Arabic:   {commonProfile, arabicProfile},
	CJK:      {commonProfile, cjkProfile},
	Mixed:    {commonProfile, latinProfile, cjkProfile},
}

// For returns the profiles consulted for text of script s.
func For(s Script) Profiles {
	if ps, ok := registry[s]; ok {
		return ps
	}
	return registry[Latin]
}

// MatchShape reports whether text has a heading shape in any profile.
func (ps Profiles) MatchShape(text string) bool {
	for _, p := range ps {
		for _, re := range p.Shapes {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// LevelOf returns the 1-based level whose markers text matches. Levels are
// tried H1 first across every profile before moving to H2, then H3.
func (ps Profiles) LevelOf(text string) (int, bool) {
	for lvl := 0; lvl < 3; lvl++ {
		for _, p := range ps {
			for _, re := range p.Levels[lvl] {
				if re.MatchString(text) {
					return lvl + 1, true
				}
			}
		}
	}
	return 0, false
}

// HasKeyword reports whether folded text contains a section keyword.
func (ps Profiles) HasKeyword(folded string) bool {
	padded := " " + folded + " "
	for _, p := range ps {
		for _, kw := range p.Keywords {
			if p.SubstringKeywords {
				if strings.Contains(folded, kw) {
					return true
				}
				continue
			}
			if strings.Contains(padded, " "+kw+" ") {
				return true
			}
		}
	}
	return false
}

// IsFunctionWord reports whether the folded token is a closed-class word.
func (ps Profiles) IsFunctionWord(token string) bool {
	for _, p := range ps {
		if _, ok := p.FunctionWords[token]; ok {
			return true
		}
	}
	return false
}

// CountCommas counts clause-separating commas in text.
func (ps Profiles) CountCommas(text string) int {
	set := ps.union(func(p *Profile) string { return p.Commas })
	n := 0
	for _, r := range text {
		if strings.ContainsRune(set, r) {
			n++
		}
	}
	return n
}

// EndsWithTerminal reports whether text ends with a sentence-ending mark.
func (ps Profiles) EndsWithTerminal(text string) bool {
	set := ps.union(func(p *Profile) string { return p.Terminals })
	for _, r := range set {
		if strings.HasSuffix(text, string(r)) {
			return true
		}
	}
	return false
}

func (ps Profiles) union(field func(*Profile) string) string {
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteString(field(p))
	}
	return sb.String()
}

func words(list ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
