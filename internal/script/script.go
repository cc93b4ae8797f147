// Package script classifies text by writing system and holds the per-script
// heuristic tables (heading shapes, level markers, section keywords, function
// words, punctuation) consulted by the heading pipeline.
package script

import "unicode"

// Script is the writing-system class of a piece of text.
type Script int

const (
	Latin Script = iota
	Cyrillic
	Arabic
	CJK
	Mixed // CJK characters alongside letters of another script
)

func (s Script) String() string {
	switch s {
	case Latin:
		return "latin"
	case Cyrillic:
		return "cyrillic"
	case Arabic:
		return "arabic"
	case CJK:
		return "cjk"
	case Mixed:
		return "mixed"
	}
	return "unknown"
}

// IsCJK reports whether CJK-relaxed heuristics apply: any text carrying a CJK
// code point is treated as CJK.
func (s Script) IsCJK() bool {
	return s == CJK || s == Mixed
}

// IsCJKRune reports whether r is a CJK ideograph, kana, or hangul syllable.
func IsCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// ContainsCJK reports whether text contains at least one CJK code point.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if IsCJKRune(r) {
			return true
		}
	}
	return false
}

// Detect classifies text. Text without letters is Latin.
func Detect(text string) Script {
	var cjk, latin, cyrillic, arabic int
	for _, r := range text {
		switch {
		case IsCJKRune(r):
			cjk++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.IsLetter(r):
			latin++
		}
	}
	if cjk > 0 {
		if latin+cyrillic+arabic > 0 {
			return Mixed
		}
		return CJK
	}
	switch {
	case arabic > latin && arabic >= cyrillic:
		return Arabic
	case cyrillic > latin:
		return Cyrillic
	}
	return Latin
}
