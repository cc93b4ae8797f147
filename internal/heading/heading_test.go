package heading

import (
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/lines"
)

func cand(text string, size float64, flags doctree.Flags, page int, x float64) *Candidate {
	return NewCandidate(lines.Line{
		Text:  text,
		Size:  size,
		Flags: flags,
		Page:  page,
		BBox:  doctree.BBox{X0: x, Y0: 0, X1: x + 100, Y1: size},
	})
}
