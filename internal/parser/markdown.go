package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. ATX and setext
// headings are styled by level; a paragraph that is entirely strong
// emphasis is styled bold.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	l := newLayout(docName(filename))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		emitMarkdownBlock(l, n, src)
	}
	return l.document(), nil
}

func emitMarkdownBlock(l *layout, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		l.line(string(node.Text(src)), headingSize(node.Level), doctree.FlagBold, "")
	case *ast.Paragraph:
		var flags doctree.Flags
		if onlyChild, ok := node.FirstChild().(*ast.Emphasis); ok && node.ChildCount() == 1 {
			if onlyChild.Level >= 2 {
				flags |= doctree.FlagBold
			} else {
				flags |= doctree.FlagItalic
			}
		}
		l.line(extractText(n, src), bodySize, flags, "")
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			emitMarkdownBlock(l, c, src)
		}
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		l.line(extractText(n, src), bodySize, 0, "")
	}
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	// Leaf blocks such as code carry raw lines; everything else is inline.
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
