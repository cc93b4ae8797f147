package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docoutline/internal/doctree"
	"golang.org/x/net/html"
)

// blockSelector lists the elements that become visual lines.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, td, th, blockquote, pre, caption, figcaption"

// HTMLParser handles HTML files. Heading tags are styled by level, bold or
// strong wrappers around a whole block mark it bold, and CSS page breaks
// start a new page.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	dom := goquery.NewDocumentFromNode(root)
	dom.Find("script, style, noscript, template, nav, footer, header").Remove()

	l := newLayout(docName(filename))
	if title := strings.TrimSpace(dom.Find("head > title").First().Text()); title != "" {
		l.line(title, headingSize(1), doctree.FlagBold, "")
	}

	body := dom.Find("body")
	if body.Length() == 0 {
		body = dom.Selection
	}
	body.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 && !s.Is("h1, h2, h3, h4, h5, h6") {
			return
		}
		if breaksPage(s) {
			l.pageBreak()
		}
		text := collapseSpaces(s.Text())
		if s.Is("pre") {
			text = s.Text()
		}
		if level := headingLevel(goquery.NodeName(s)); level > 0 {
			l.line(text, headingSize(level), doctree.FlagBold, "")
			return
		}
		l.line(text, bodySize, blockFlags(s, text), "")
	})
	return l.document(), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// blockFlags reports bold or italic when a single inline wrapper holds all
// of the block's text.
func blockFlags(s *goquery.Selection, text string) doctree.Flags {
	kids := s.Children()
	if kids.Length() != 1 || collapseSpaces(kids.Text()) != text {
		return 0
	}
	switch {
	case kids.Is("b, strong"):
		return doctree.FlagBold
	case kids.Is("i, em"):
		return doctree.FlagItalic
	}
	return 0
}

func breaksPage(s *goquery.Selection) bool {
	style, ok := s.Attr("style")
	if !ok {
		return false
	}
	style = strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return strings.Contains(style, "page-break-before:always") || strings.Contains(style, "break-before:page")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
