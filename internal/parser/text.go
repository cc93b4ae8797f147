package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// TextParser handles plain text files. Every non-blank line becomes a body
// span; form feeds start a new page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	return parseText(r, docName(filename))
}

func parseText(r io.Reader, name string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	l := newLayout(name)
	for scanner.Scan() {
		pieces := strings.Split(scanner.Text(), "\f")
		for i, piece := range pieces {
			if i > 0 {
				l.pageBreak()
			}
			l.line(piece, bodySize, 0, "")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l.document(), nil
}
