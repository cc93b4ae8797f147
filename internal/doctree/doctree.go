package doctree

// Flags is the font flag bitmask reported by the source parser.
type Flags uint32

const (
	FlagBold   Flags = 1 << 4
	FlagItalic Flags = 1 << 6
)

// BBox is a text bounding box in page units (x0, y0, x1, y1).
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// RawSpan is a single styled text run as produced by a source parser.
type RawSpan struct {
	Text     string
	FontSize float64
	Flags    Flags
	FontName string
	Page     int // 1-based
	BBox     BBox
}

// Page holds the spans of one page, grouped by visual line in reading order.
type Page struct {
	Number int
	Lines  [][]RawSpan
}

// Document is the parser output for a single input file.
type Document struct {
	Name  string
	Pages []Page
}

// SpanCount returns the total number of spans across all pages.
func (d *Document) SpanCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			n += len(l)
		}
	}
	return n
}

// Level is a heading level in the outline.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Rank orders levels for sorting: H1 < H2 < H3. Unknown levels sort last.
func (l Level) Rank() int {
	switch l {
	case H1:
		return 1
	case H2:
		return 2
	case H3:
		return 3
	}
	return 4
}

// Valid reports whether l is one of H1, H2, H3.
func (l Level) Valid() bool {
	return l == H1 || l == H2 || l == H3
}

// HeadingEntry is one line of the final outline.
type HeadingEntry struct {
	Level Level  `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Page  int    `json:"page" yaml:"page"`
}

// Result is the outline for a single document.
type Result struct {
	Title   string         `json:"title" yaml:"title"`
	Outline []HeadingEntry `json:"outline" yaml:"outline"`
}

// Sentinel titles for degenerate documents. Each comes with an empty outline.
const (
	TitleEmptyDocument = "Empty Document"
	TitleNoTextFound   = "No Text Found"
	TitleParseError    = "Error Processing Document"
	TitleUntitled      = "Untitled Document"
)

// Sentinel returns a well-formed result with the given title and an empty outline.
func Sentinel(title string) Result {
	return Result{Title: title, Outline: []HeadingEntry{}}
}
