// Package lines merges the styled spans of a visual line into a single
// logical text line with aggregated font metrics.
package lines

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Line is one visual line of text with aggregated style.
type Line struct {
	Text  string // span texts joined by single spaces, not normalized
	Size  float64
	Flags doctree.Flags
	Font  string
	Page  int
	BBox  doctree.BBox
}

func (l Line) IsBold() bool   { return l.Flags&doctree.FlagBold != 0 }
func (l Line) IsItalic() bool { return l.Flags&doctree.FlagItalic != 0 }

// Assemble builds one Line per visual line of spans. Spans whose trimmed text
// is empty do not contribute; a line left with no spans is dropped.
func Assemble(spans []doctree.RawSpan, page int) (Line, bool) {
	var (
		texts   []string
		sizeSum float64
		flags   doctree.Flags
		first   *doctree.RawSpan
		fonts   fontCounter
	)
	for i := range spans {
		s := &spans[i]
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		if first == nil {
			first = s
		}
		texts = append(texts, t)
		sizeSum += s.FontSize
		flags |= s.Flags
		fonts.add(s.FontName)
	}
	if first == nil {
		return Line{}, false
	}
	if first.Page > 0 {
		page = first.Page
	}
	return Line{
		Text:  strings.Join(texts, " "),
		Size:  sizeSum / float64(len(texts)),
		Flags: flags,
		Font:  fonts.mostFrequent(),
		Page:  page,
		BBox:  first.BBox,
	}, true
}

// FromDocument assembles every line of every page in document order.
func FromDocument(doc *doctree.Document) []Line {
	if doc == nil {
		return nil
	}
	var out []Line
	for _, p := range doc.Pages {
		for _, spans := range p.Lines {
			if l, ok := Assemble(spans, p.Number); ok {
				out = append(out, l)
			}
		}
	}
	return out
}

// fontCounter counts font names, remembering first-seen order for ties.
type fontCounter struct {
	order  []string
	counts map[string]int
}

func (c *fontCounter) add(name string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *fontCounter) mostFrequent() string {
	best, bestN := "", 0
	for _, name := range c.order {
		if n := c.counts[name]; n > bestN {
			best, bestN = name, n
		}
	}
	return best
}
