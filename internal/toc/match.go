package toc

import "sort"

// Highlight is one highlighted passage with its optional reader note.
type Highlight struct {
	Text string
	Note string
	// Location is the hierarchical identifier anchoring the highlight
	// within the book's content.
	Location string
	// Position is the 0.0-1.0 offset within the containing chapter,
	// when the source provides one.
	Position float64
	// Created is the creation timestamp as stored by the reader
	// (ISO 8601 text, so lexical order is chronological).
	Created string
}

// Match returns the index of the node whose identifier is the longest
// segment-prefix of the given location identifier, or -1 when no node's
// identifier is a prefix of it. A location that matches only the book's
// synthetic root is reported as unmatched.
func (t *Tree) Match(location string) int {
	segs := segments(location)
	for n := len(segs); n >= 1; n-- {
		if index, ok := t.byID[canonical(segs[:n])]; ok {
			return index
		}
	}
	return -1
}

// MatchHighlights attaches every highlight to the most specific TOC node
// its location falls under and returns the ones that matched nothing.
// Each highlight ends up in exactly one node's list or in the returned
// unmatched slice.
//
// A malformed location never aborts the run; its highlight is treated as
// unmatched and counted as a warning on the tree.
func (t *Tree) MatchHighlights(highlights []Highlight) []Highlight {
	var unmatched []Highlight

	for _, h := range highlights {
		if len(segments(h.Location)) == 0 {
			t.Warnings++
			unmatched = append(unmatched, h)
			continue
		}
		index := t.Match(h.Location)
		if index < 0 {
			unmatched = append(unmatched, h)
			continue
		}
		t.Nodes[index].Highlights = append(t.Nodes[index].Highlights, h)
	}

	// Within a node highlights are read in chronological order; the stable
	// sort preserves input order for equal timestamps.
	for i := range t.Nodes {
		sortChronological(t.Nodes[i].Highlights)
	}
	sortChronological(unmatched)

	return unmatched
}

func sortChronological(list []Highlight) {
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].Created < list[b].Created
	})
}
