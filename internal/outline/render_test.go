package outline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docoutline/internal/doctree"
)

var sample = doctree.Result{
	Title: "Report <2024>",
	Outline: []doctree.HeadingEntry{
		{Level: doctree.H1, Text: "第一章 緒論", Page: 1},
		{Level: doctree.H2, Text: "Scope & Aims", Page: 1},
		{Level: doctree.H3, Text: "Detail", Page: 2},
	},
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample, FormatJSON))
	out := buf.String()
	assert.Contains(t, out, `"title": "Report <2024>"`)
	assert.Contains(t, out, `"text": "第一章 緒論"`)
	assert.Contains(t, out, `"text": "Scope & Aims"`)
	assert.Contains(t, out, `"level": "H1"`)
}

func TestRenderJSONEmptyOutline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doctree.Result{Title: doctree.TitleNoTextFound}, FormatJSON))
	assert.Equal(t, "{\n  \"title\": \"No Text Found\",\n  \"outline\": []\n}\n", buf.String())
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample, FormatYAML))
	assert.Contains(t, buf.String(), "第一章 緒論")

	var back doctree.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample, FormatMarkdown))
	want := "# Report <2024>\n\n" +
		"- 第一章 緒論 (p. 1)\n" +
		"  - Scope & Aims (p. 1)\n" +
		"    - Detail (p. 2)\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderRejectsInvalidUTF8(t *testing.T) {
	bad := doctree.Result{Title: "ok", Outline: []doctree.HeadingEntry{{Level: doctree.H1, Text: "bad \xff", Page: 1}}}
	for _, f := range []Format{FormatJSON, FormatYAML, FormatMarkdown} {
		var buf bytes.Buffer
		assert.ErrorIs(t, Render(&buf, bad, f), ErrEncoding)
		assert.Zero(t, buf.Len())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
	}{
		{"", FormatJSON, ".json"},
		{"JSON", FormatJSON, ".json"},
		{"yml", FormatYAML, ".yaml"},
		{"yaml", FormatYAML, ".yaml"},
		{"md", FormatMarkdown, ".md"},
		{"Markdown", FormatMarkdown, ".md"},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ext, got.Extension())
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
