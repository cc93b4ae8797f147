package outline

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// ErrEncoding is returned when a result holds text that is not valid UTF-8.
var ErrEncoding = errors.New("result is not valid UTF-8")

// Format selects the output serialization.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts json, yaml/yml and markdown/md, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	}
	return ".json"
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "application/json"
}

// Render writes res to w in the given format. Non-ASCII text is written
// as-is, never escaped.
func Render(w io.Writer, res doctree.Result, f Format) error {
	if !validUTF8(res) {
		return ErrEncoding
	}
	if res.Outline == nil {
		res.Outline = []doctree.HeadingEntry{}
	}
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		return renderMarkdown(w, res)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// renderMarkdown writes the outline as a nested bullet list under the title.
func renderMarkdown(w io.Writer, res doctree.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", res.Title)
	if len(res.Outline) > 0 {
		bw.WriteString("\n")
	}
	for _, e := range res.Outline {
		indent := strings.Repeat("  ", e.Level.Rank()-1)
		fmt.Fprintf(bw, "%s- %s (p. %d)\n", indent, e.Text, e.Page)
	}
	return bw.Flush()
}

func validUTF8(res doctree.Result) bool {
	if !utf8.ValidString(res.Title) {
		return false
	}
	for _, e := range res.Outline {
		if !utf8.ValidString(e.Text) || !utf8.ValidString(string(e.Level)) {
			return false
		}
	}
	return true
}
