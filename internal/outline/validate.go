package outline

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// ValidationError reports a result that breaks the output contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid outline: %s: %s", e.Field, e.Reason)
}

// Validate checks res against the output contract: a non-empty title, a
// non-nil outline, and entries with a known level, non-empty text and a
// 1-based page, ordered by (page, level).
func Validate(res doctree.Result) error {
	if strings.TrimSpace(res.Title) == "" {
		return &ValidationError{Field: "title", Reason: "empty"}
	}
	if res.Outline == nil {
		return &ValidationError{Field: "outline", Reason: "missing"}
	}
	for i, e := range res.Outline {
		field := fmt.Sprintf("outline[%d]", i)
		if !e.Level.Valid() {
			return &ValidationError{Field: field + ".level", Reason: fmt.Sprintf("unknown level %q", e.Level)}
		}
		if strings.TrimSpace(e.Text) == "" {
			return &ValidationError{Field: field + ".text", Reason: "empty"}
		}
		if e.Page < 1 {
			return &ValidationError{Field: field + ".page", Reason: fmt.Sprintf("page %d is not 1-based", e.Page)}
		}
		if i > 0 && outOfOrder(res.Outline[i-1], e) {
			return &ValidationError{Field: field, Reason: "not sorted by page and level"}
		}
	}
	return nil
}

func outOfOrder(prev, cur doctree.HeadingEntry) bool {
	if prev.Page != cur.Page {
		return prev.Page > cur.Page
	}
	return prev.Level.Rank() > cur.Level.Rank()
}
