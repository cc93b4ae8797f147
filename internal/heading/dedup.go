package heading

import (
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/script"
	"github.com/dgallion1/docoutline/internal/textnorm"
)

type seenEntry struct {
	page   int
	tokens map[string]struct{}
}

// Deduplicator drops repeated headings, keeping the first occurrence.
type Deduplicator struct {
	similarity float64
	pageWindow int
}

func NewDeduplicator(cfg Config) Deduplicator {
	return Deduplicator{similarity: cfg.DedupSimilarity, pageWindow: cfg.DedupPageWindow}
}

// Dedupe returns entries without duplicates, in discovery order. CJK text
// only collapses on an exact whitespace-free match; other text also collapses
// on high token overlap with a kept entry a few pages away at most.
func (d Deduplicator) Dedupe(entries []doctree.HeadingEntry) []doctree.HeadingEntry {
	exact := make(map[string]struct{}, len(entries))
	var near []seenEntry
	out := make([]doctree.HeadingEntry, 0, len(entries))

	for _, e := range entries {
		key := textnorm.Key(e.Text)
		if _, dup := exact[key]; dup {
			continue
		}
		if script.ContainsCJK(key) {
			exact[key] = struct{}{}
			out = append(out, e)
			continue
		}
		tokens := textnorm.Tokens(key)
		if d.nearDuplicate(e.Page, tokens, near) {
			continue
		}
		exact[key] = struct{}{}
		near = append(near, seenEntry{page: e.Page, tokens: tokens})
		out = append(out, e)
	}
	return out
}

func (d Deduplicator) nearDuplicate(page int, tokens map[string]struct{}, kept []seenEntry) bool {
	for _, k := range kept {
		diff := page - k.page
		if diff < 0 {
			diff = -diff
		}
		if diff <= d.pageWindow && textnorm.Jaccard(tokens, k.tokens) > d.similarity {
			return true
		}
	}
	return false
}
