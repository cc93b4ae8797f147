package heading

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docoutline/internal/script"
	"github.com/dgallion1/docoutline/internal/textnorm"
)

// Reason explains why a line was excluded.
type Reason int

const (
	NotExcluded Reason = iota
	ReasonEmpty
	ReasonBoilerplate
	ReasonDivider
	ReasonLowSignal
	ReasonFunctionWord
)

func (r Reason) String() string {
	switch r {
	case NotExcluded:
		return "none"
	case ReasonEmpty:
		return "empty"
	case ReasonBoilerplate:
		return "boilerplate"
	case ReasonDivider:
		return "divider"
	case ReasonLowSignal:
		return "low_signal"
	case ReasonFunctionWord:
		return "function_word"
	}
	return "unknown"
}

// Boilerplate patterns, matched against normalized text in order.
var boilerplate = []*regexp.Regexp{
	// page numbers
	regexp.MustCompile(`^\d{1,4}$`),
	regexp.MustCompile(`(?i)^(page|pg|p|seite|página|pagina|страница|صفحة)\.?\s*\d+(\s*(of|/|de|von|из|من)\s*\d+)?$`),
	regexp.MustCompile(`(?i)^\d+\s*(of|/)\s*\d+$`),
	regexp.MustCompile(`^第\s*\d+\s*[页頁]`),
	regexp.MustCompile(`^\d+\s*(ページ|页|頁|쪽)$`),
	// figure and table captions
	regexp.MustCompile(`(?i)^(figure|fig|table|tab|chart|exhibit|diagram|graph|illustration|abbildung|abb|tabelle|tableau|tabla|figura|рисунок|рис|таблица|شكل|جدول)\.?\s*\d+`),
	regexp.MustCompile(`^(图|圖|表|図|그림)\s*\d+`),
	// links, mail, paths
	regexp.MustCompile(`(?i)(https?://|ftp://|www\.)\S+`),
	regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`),
	regexp.MustCompile(`^([a-zA-Z]:\\|\.{0,2}/)\S+$`),
	regexp.MustCompile(`(?i)^[\w-]+\.(pdf|docx?|xlsx?|pptx?|txt|csv|png|jpe?g|gif|html?|md)$`),
	// dates
	regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}$`),
	regexp.MustCompile(`^\d{4}[/.-]\d{1,2}[/.-]\d{1,2}$`),
	regexp.MustCompile(`(?i)^(\d{1,2}\s+)?(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?\s+(\d{1,2},?\s+)?\d{4}$`),
	regexp.MustCompile(`^\d{4}\s*年(\s*\d{1,2}\s*月)?(\s*\d{1,2}\s*日)?$`),
	// copyright
	regexp.MustCompile(`(?i)^(©|\(c\)|copyright\b)`),
	regexp.MustCompile(`(?i)all rights reserved`),
}

// Roman page numbers are written in one case; "Mix" or "Dix" are words.
var (
	romanUpper = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	romanLower = regexp.MustCompile(`^m{0,3}(cm|cd|d?c{0,3})(xc|xl|l?x{0,3})(ix|iv|v?i{0,3})$`)
)

func isRomanNumeral(s string) bool {
	return romanUpper.MatchString(s) || romanLower.MatchString(s)
}

// Filter rejects boilerplate and low-signal lines.
type Filter struct {
	minAlnumRatio      float64
	dividerMaxDistinct int
	dividerMinRepeat   int
}

// NewFilter builds a Filter from the thresholds in cfg.
func NewFilter(cfg Config) Filter {
	return Filter{
		minAlnumRatio:      cfg.MinAlnumRatio,
		dividerMaxDistinct: cfg.DividerMaxDistinct,
		dividerMinRepeat:   cfg.DividerMinRepeat,
	}
}

// Excluded reports whether normalized text should never become a heading.
func (f Filter) Excluded(normalized string) bool {
	return f.Check(normalized) != NotExcluded
}

// Check returns the first exclusion reason that applies to normalized text.
func (f Filter) Check(normalized string) Reason {
	if normalized == "" {
		return ReasonEmpty
	}
	for _, re := range boilerplate {
		if re.MatchString(normalized) {
			return ReasonBoilerplate
		}
	}
	if isRomanNumeral(normalized) {
		return ReasonBoilerplate
	}
	if f.isDivider(normalized) {
		return ReasonDivider
	}
	if f.alnumRatio(normalized) < f.minAlnumRatio {
		return ReasonLowSignal
	}
	sc := script.Detect(normalized)
	if !sc.IsCJK() && startsWithFunctionWord(normalized, script.For(sc)) {
		return ReasonFunctionWord
	}
	return NotExcluded
}

// isDivider spots rules such as "-----" or "=-=-=-=": few distinct
// characters repeated many times.
func (f Filter) isDivider(text string) bool {
	distinct := make(map[rune]struct{})
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		distinct[r] = struct{}{}
		n++
	}
	return n > f.dividerMinRepeat && len(distinct) <= f.dividerMaxDistinct
}

func (f Filter) alnumRatio(text string) float64 {
	total, good := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || script.IsCJKRune(r) {
			good++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(good) / float64(total)
}

// startsWithFunctionWord checks the first token only when it is a bare word;
// "A." or "I." are enumeration markers, not articles or pronouns.
func startsWithFunctionWord(text string, profiles script.Profiles) bool {
	first, _, _ := strings.Cut(text, " ")
	for _, r := range first {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return profiles.IsFunctionWord(textnorm.Lower(first))
}
