package parser

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Formats without real typography get synthetic sizes: body text at
// bodySize, headings h1..h6 at headingSizes[level].
const (
	bodySize    = 11.0
	leftMargin  = 72.0
	lineSpacing = 1.2
	avgCharW    = 0.5 // em fraction used to estimate span width
)

var headingSizes = [7]float64{bodySize, 24, 18, 15, 13, 12, 11}

func headingSize(level int) float64 {
	if level < 1 || level >= len(headingSizes) {
		return bodySize
	}
	return headingSizes[level]
}

// layout lays out flowing text top to bottom on synthetic pages.
type layout struct {
	doc *doctree.Document
	y   float64
}

func newLayout(name string) *layout {
	return &layout{doc: &doctree.Document{Name: name, Pages: []doctree.Page{{Number: 1}}}}
}

func (l *layout) current() *doctree.Page {
	return &l.doc.Pages[len(l.doc.Pages)-1]
}

// pageBreak starts a new page. Consecutive breaks never leave empty pages
// behind except at the very start.
func (l *layout) pageBreak() {
	if len(l.current().Lines) == 0 {
		return
	}
	l.doc.Pages = append(l.doc.Pages, doctree.Page{Number: len(l.doc.Pages) + 1})
	l.y = 0
}

// line appends one visual line holding a single span. Text is split on
// newlines; blank pieces are skipped.
func (l *layout) line(text string, size float64, flags doctree.Flags, font string) {
	for _, piece := range strings.Split(text, "\n") {
		piece = strings.TrimRight(piece, " \t\r")
		if strings.TrimSpace(piece) == "" {
			continue
		}
		indent := float64(len(piece)-len(strings.TrimLeft(piece, " \t"))) * size * avgCharW
		piece = strings.TrimSpace(piece)
		p := l.current()
		x0 := leftMargin + indent
		span := doctree.RawSpan{
			Text:     piece,
			FontSize: size,
			Flags:    flags,
			FontName: font,
			Page:     p.Number,
			BBox: doctree.BBox{
				X0: x0,
				Y0: l.y,
				X1: x0 + float64(len([]rune(piece)))*size*avgCharW,
				Y1: l.y + size,
			},
		}
		p.Lines = append(p.Lines, []doctree.RawSpan{span})
		l.y += size * lineSpacing
	}
}

// runs appends one visual line made of several styled spans laid out left
// to right.
func (l *layout) runs(spans []doctree.RawSpan) {
	p := l.current()
	x := leftMargin
	var out []doctree.RawSpan
	height := 0.0
	for _, s := range spans {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		w := float64(len([]rune(s.Text))) * s.FontSize * avgCharW
		s.Page = p.Number
		s.BBox = doctree.BBox{X0: x, Y0: l.y, X1: x + w, Y1: l.y + s.FontSize}
		x += w
		if s.FontSize > height {
			height = s.FontSize
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return
	}
	p.Lines = append(p.Lines, out)
	l.y += height * lineSpacing
}

func (l *layout) document() *doctree.Document {
	last := len(l.doc.Pages) - 1
	if last > 0 && len(l.doc.Pages[last].Lines) == 0 {
		l.doc.Pages = l.doc.Pages[:last]
	}
	return l.doc
}
