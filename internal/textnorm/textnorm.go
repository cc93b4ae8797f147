// Package textnorm normalizes line text for comparison: NFKC folding,
// whitespace collapsing, edge punctuation trimming and case folding.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/dgallion1/docoutline/internal/script"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// edgePunct is trimmed from both ends by Normalize. Brackets and CJK
// punctuation are kept: they carry enumeration and sentence meaning.
const edgePunct = ".,;:!?-_*•·\"'`~|#=+"

// Clean applies NFKC and collapses whitespace runs to single spaces.
func Clean(text string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(text)), " ")
}

// Normalize returns Clean(text) with restricted ASCII punctuation and
// whitespace trimmed from both ends. Normalize is idempotent.
func Normalize(text string) string {
	return strings.TrimFunc(Clean(text), isEdge)
}

func isEdge(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(edgePunct, r)
}

// Fold lowercases text with Unicode case folding rules.
func Fold(text string) string {
	return cases.Fold().String(text)
}

// Lower lowercases text using language-neutral rules.
func Lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// Comparable is the form used to compare a heading against the title.
func Comparable(text string) string {
	return Normalize(Lower(text))
}

// Key is the deduplication key of a heading. CJK text keeps its characters
// and drops all whitespace; other text is lowercased with punctuation removed.
func Key(text string) string {
	n := Normalize(text)
	if script.ContainsCJK(n) {
		return strings.Join(strings.Fields(n), "")
	}
	var sb strings.Builder
	for _, r := range Lower(n) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(r)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Tokens returns the set of space-separated tokens of a dedup key.
func Tokens(key string) map[string]struct{} {
	fields := strings.Fields(key)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// TitleCaseRatio returns the fraction of space-separated words whose first
// letter is uppercase. Words without letters are counted but never title-case.
func TitleCaseRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	upper := 0
	for _, f := range fields {
		for _, r := range f {
			if unicode.IsLetter(r) {
				if unicode.IsUpper(r) {
					upper++
				}
				break
			}
		}
	}
	return float64(upper) / float64(len(fields))
}

// IsAllCaps reports whether text has cased letters and none are lowercase.
func IsAllCaps(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// RuneLen returns the number of code points in text.
func RuneLen(text string) int {
	return len([]rune(text))
}
