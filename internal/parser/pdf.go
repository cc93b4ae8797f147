package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// defaultPageHeight is US Letter, used when a page has no MediaBox.
const defaultPageHeight = 792.0

// PDFParser handles PDF files. It reads glyphs with the Go library and
// groups them into lines and styled spans. When the library fails or finds
// no text it can fall back to pdftotext, which yields unstyled lines.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	name := docName(filename)

	doc, err := readPDF(data, name)
	if (err != nil || doc.SpanCount() == 0) && p.FallbackPdftotext {
		if fallback, ferr := pdftotextDocument(data, name); ferr == nil && fallback.SpanCount() > 0 {
			return fallback, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return doc, nil
}

// readPDF walks every page. The reader panics on some malformed inputs;
// those become errors.
func readPDF(data []byte, name string) (doc *doctree.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	doc = &doctree.Document{Name: name}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		pg := doctree.Page{Number: i}
		if !page.V.IsNull() {
			pg.Lines = pageLines(page.Content().Text, pageHeight(page), i)
		}
		doc.Pages = append(doc.Pages, pg)
	}
	return doc, nil
}

func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() != pdflib.Array || box.Len() < 4 {
		return defaultPageHeight
	}
	if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
		return h
	}
	return defaultPageHeight
}

// pageLines groups glyphs into visual lines (top to bottom) and each line
// into spans (left to right). A new span starts when the font or size
// changes. Coordinates are flipped so Y grows downwards.
func pageLines(glyphs []pdflib.Text, height float64, page int) [][]doctree.RawSpan {
	rows := groupRows(glyphs)
	out := make([][]doctree.RawSpan, 0, len(rows))
	for _, row := range rows {
		if spans := rowSpans(row, height, page); len(spans) > 0 {
			out = append(out, spans)
		}
	}
	return out
}

// groupRows clusters glyphs whose baselines lie within half a font size.
func groupRows(glyphs []pdflib.Text) [][]pdflib.Text {
	sorted := make([]pdflib.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdflib.Text
	var baseline, size float64
	for _, g := range sorted {
		n := len(rows)
		if n > 0 && math.Abs(g.Y-baseline) <= math.Max(math.Max(size, g.FontSize)*0.5, 1) {
			rows[n-1] = append(rows[n-1], g)
			size = math.Max(size, g.FontSize)
			continue
		}
		rows = append(rows, []pdflib.Text{g})
		baseline, size = g.Y, g.FontSize
	}
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

type spanBuilder struct {
	text   strings.Builder
	font   string
	size   float64
	x0, x1 float64
	top    float64
	bottom float64
	used   bool
}

func (b *spanBuilder) start(g pdflib.Text) {
	b.text.Reset()
	b.font, b.size = g.Font, g.FontSize
	b.x0, b.x1 = g.X, g.X+g.W
	b.top, b.bottom = g.Y+g.FontSize, g.Y
	b.used = true
}

func (b *spanBuilder) add(g pdflib.Text) {
	b.text.WriteString(g.S)
	b.x1 = math.Max(b.x1, g.X+g.W)
	b.top = math.Max(b.top, g.Y+g.FontSize)
	b.bottom = math.Min(b.bottom, g.Y)
}

func (b *spanBuilder) span(height float64, page int) (doctree.RawSpan, bool) {
	text := b.text.String()
	if !b.used || strings.TrimSpace(text) == "" {
		return doctree.RawSpan{}, false
	}
	return doctree.RawSpan{
		Text:     text,
		FontSize: b.size,
		Flags:    fontFlags(b.font),
		FontName: baseFontName(b.font),
		Page:     page,
		BBox:     doctree.BBox{X0: b.x0, Y0: height - b.top, X1: b.x1, Y1: height - b.bottom},
	}, true
}

func rowSpans(row []pdflib.Text, height float64, page int) []doctree.RawSpan {
	var spans []doctree.RawSpan
	var b spanBuilder
	prevEnd := 0.0
	for i, g := range row {
		if i == 0 || g.Font != b.font || math.Abs(g.FontSize-b.size) > 0.1 {
			if s, ok := b.span(height, page); ok {
				spans = append(spans, s)
			}
			b.start(g)
		} else if gap := g.X - prevEnd; gap > math.Max(g.FontSize*0.2, 0.5) && !strings.HasSuffix(b.text.String(), " ") {
			b.text.WriteByte(' ')
		}
		b.add(g)
		prevEnd = g.X + g.W
	}
	if s, ok := b.span(height, page); ok {
		spans = append(spans, s)
	}
	return spans
}

// baseFontName drops the six-letter subset prefix ("ABCDEF+Helvetica").
func baseFontName(font string) string {
	if i := strings.IndexByte(font, '+'); i == 6 {
		return font[i+1:]
	}
	return font
}

// fontFlags infers bold and italic from the font's PostScript name.
func fontFlags(font string) doctree.Flags {
	name := strings.ToLower(baseFontName(font))
	var f doctree.Flags
	for _, w := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(name, w) {
			f |= doctree.FlagBold
			break
		}
	}
	if strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
		f |= doctree.FlagItalic
	}
	return f
}

// pdftotextDocument runs pdftotext over data and reads its output as plain
// text with form-feed page breaks.
func pdftotextDocument(data []byte, name string) (*doctree.Document, error) {
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	out, err := exec.Command("pdftotext", "-layout", tmpPath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return parseText(bytes.NewReader(out), name)
}
