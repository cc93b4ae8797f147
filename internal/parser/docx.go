package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Each paragraph is one visual line; adjacent
// runs with identical styling form one span, and line breaks split the line.
// Run sizes come from w:sz (half-points); paragraphs in a HeadingN or Title
// style fall back to the matching heading size. Page breaks start a new page.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReaderAt+size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	data = dropDisabledToggles(data)
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	l := newLayout(docName(filename))
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			emitParagraph(l, it)
		case *docx.Table:
			for _, row := range it.TableRows {
				for _, cell := range row.TableCells {
					for _, para := range cell.Paragraphs {
						emitParagraph(l, para)
					}
				}
			}
		}
	}
	return l.document(), nil
}

func emitParagraph(l *layout, para *docx.Paragraph) {
	level := docxHeadingLevel(para)
	var spans []doctree.RawSpan
	flush := func() {
		l.runs(spans)
		spans = nil
	}
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		span := runSpan(run, level)
		for _, rc := range run.Children {
			switch c := rc.(type) {
			case *docx.Text:
				span.Text += c.Text
			case *docx.Tab:
				span.Text += " "
			case *docx.BarterRabbet:
				spans = appendSpan(spans, span)
				span.Text = ""
				flush()
				if c.Type == "page" {
					l.pageBreak()
				}
			}
		}
		spans = appendSpan(spans, span)
	}
	flush()
}

// appendSpan adds s, merging it into the previous span when both share size,
// flags and font. Word splits words across runs freely ("Intro" + "duction").
func appendSpan(spans []doctree.RawSpan, s doctree.RawSpan) []doctree.RawSpan {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if last.FontSize == s.FontSize && last.Flags == s.Flags && last.FontName == s.FontName {
			last.Text += s.Text
			return spans
		}
	}
	return append(spans, s)
}

// disabledToggle matches bold/italic toggles switched off with w:val.
var disabledToggle = regexp.MustCompile(`<w:(b|i)\s+w:val="(?:0|false|off)"\s*(?:/>|>\s*</w:(?:b|i)>)`)

// dropDisabledToggles removes <w:b w:val="0"/> style elements from the main
// document part. go-docx keeps only the element's presence, which would turn
// an explicit "not bold" into bold. Archives it cannot rewrite are returned
// unchanged.
func dropDisabledToggles(data []byte) []byte {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return data
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return data
	}
	rc, err := part.Open()
	if err != nil {
		return data
	}
	xmlData, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || !disabledToggle.Match(xmlData) {
		return data
	}
	xmlData = disabledToggle.ReplaceAll(xmlData, nil)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		if f != part {
			if err := zw.Copy(f); err != nil {
				return data
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return data
		}
		if _, err := w.Write(xmlData); err != nil {
			return data
		}
	}
	if err := zw.Close(); err != nil {
		return data
	}
	return buf.Bytes()
}

// runSpan returns an empty span carrying the run's styling.
func runSpan(run *docx.Run, level int) doctree.RawSpan {
	s := doctree.RawSpan{FontSize: headingSize(level)}
	if level > 0 {
		s.Flags |= doctree.FlagBold
	}
	rp := run.RunProperties
	if rp == nil {
		return s
	}
	if rp.Bold != nil {
		s.Flags |= doctree.FlagBold
	}
	if rp.Italic != nil {
		s.Flags |= doctree.FlagItalic
	}
	if rp.Size != nil {
		if halfPoints, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil && halfPoints > 0 {
			s.FontSize = halfPoints / 2
		}
	}
	if rp.Fonts != nil {
		s.FontName = rp.Fonts.ASCII
		if s.FontName == "" {
			s.FontName = rp.Fonts.EastAsia
		}
	}
	return s
}

// docxHeadingLevel maps Title and HeadingN paragraph styles to a level.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if n, ok := strings.CutPrefix(style, "heading"); ok {
		if level, err := strconv.Atoi(n); err == nil && level >= 1 && level <= 6 {
			return level
		}
	}
	return 0
}
