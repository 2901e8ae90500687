// Package toc reconstructs a book's table of contents from flat content
// rows and reconciles highlights against it.
//
// Content identifiers are hierarchical, path-like strings: the identifier
// of an ancestor entry is a segment-wise prefix of its descendants'
// identifiers. The tree is held as an arena of nodes indexed by position,
// with parent/child edges stored as index references.
package toc

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one structural row of a book, as handed to the builder.
type Entry struct {
	// ID is the hierarchical identifier; its segment prefixes denote
	// ancestor entries.
	ID    string
	Title string
	// Depth is the declared TOC level (1 = top). Zero means undeclared;
	// the structural depth of the built tree is used instead.
	Depth int
	// Order is the document-order key used to sort siblings.
	Order int
}

// Node is one entry of the reconstructed table of contents.
type Node struct {
	ID    string
	Title string
	Depth int
	Order int

	// Parent and Children are indexes into Tree.Nodes. The root has
	// Parent == -1.
	Parent   int
	Children []int

	// Highlights attached directly to this node, filled in by the matcher.
	Highlights []Highlight
}

// Tree is the arena of TOC nodes for one book. Nodes[0] is always the
// synthetic root representing the whole book; it never carries highlights
// and is never a match target.
type Tree struct {
	Nodes []Node

	// byID maps canonical identifiers to node indexes. The root is
	// deliberately absent: a highlight whose location matches only the
	// book itself is uncategorized, not matched.
	byID map[string]int

	// Warnings counts row-level anomalies recovered during the build
	// (duplicate identifiers, empty identifiers).
	Warnings int
}

// identifier segments are delimited by path separators and the separators
// Kobo uses inside EPUB ContentIDs.
func isSeparator(c rune) bool {
	return c == '/' || c == '!' || c == '#' || c == '_'
}

func segments(id string) []string {
	return strings.FieldsFunc(id, isSeparator)
}

// canonical joins an identifier's segments back into a single comparable
// key, so that ids differing only in separator style compare equal.
func canonical(segs []string) string {
	return strings.Join(segs, "/")
}

// comparePaths orders identifiers segment by segment; a shorter identifier
// that is a prefix of a longer one sorts first, since it is an ancestor.
func comparePaths(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func isProperPrefix(prefix, path []string) bool {
	if len(prefix) >= len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

// Build reconstructs the TOC tree for one book from its unordered content
// rows. bookID is the book's own identifier: an entry whose identifier
// equals it is folded into the synthetic root rather than becoming a match
// target.
//
// The build is deterministic: the same rows in any order produce the same
// tree shape and sibling ordering.
func Build(bookID string, entries []Entry) (*Tree, error) {
	rootSegs := segments(bookID)

	tree := &Tree{
		Nodes: []Node{{
			ID:     canonical(rootSegs),
			Parent: -1,
		}},
		byID: make(map[string]int, len(entries)),
	}

	type row struct {
		entry Entry
		segs  []string
		key   string
	}

	rows := make([]row, 0, len(entries))
	for _, entry := range entries {
		segs := segments(entry.ID)
		if len(segs) == 0 {
			tree.Warnings++
			continue
		}
		rows = append(rows, row{entry: entry, segs: segs, key: canonical(segs)})
	}

	// Ancestor-first ordering. Equal identifiers are ordered by document
	// order so that deduplication keeps the earliest row deterministically.
	sort.Slice(rows, func(i, j int) bool {
		if c := comparePaths(rows[i].segs, rows[j].segs); c != 0 {
			return c < 0
		}
		if rows[i].entry.Order != rows[j].entry.Order {
			return rows[i].entry.Order < rows[j].entry.Order
		}
		return rows[i].entry.ID < rows[j].entry.ID
	})

	// stack holds the current ancestor chain; the root is always at the
	// bottom, so entries whose parent prefix has no row of its own attach
	// to the nearest existing ancestor, or to the root.
	type frame struct {
		index int
		segs  []string
	}
	stack := []frame{{index: 0, segs: rootSegs}}

	for _, r := range rows {
		if r.key == tree.Nodes[0].ID {
			// The book's own row: keep its title on the root.
			if tree.Nodes[0].Title == "" {
				tree.Nodes[0].Title = r.entry.Title
			}
			continue
		}
		if _, seen := tree.byID[r.key]; seen {
			tree.Warnings++
			continue
		}

		for len(stack) > 1 && !isProperPrefix(stack[len(stack)-1].segs, r.segs) {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].index

		depth := r.entry.Depth
		if depth <= 0 {
			depth = len(stack)
		}

		index := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, Node{
			ID:     r.key,
			Title:  r.entry.Title,
			Depth:  depth,
			Order:  r.entry.Order,
			Parent: parent,
		})
		tree.Nodes[parent].Children = append(tree.Nodes[parent].Children, index)
		tree.byID[r.key] = index
		stack = append(stack, frame{index: index, segs: r.segs})
	}

	tree.nestByDeclaredDepth()

	// Siblings are ordered by document-order key, ties by identifier, so
	// the walk order never depends on the database's row order.
	for i := range tree.Nodes {
		children := tree.Nodes[i].Children
		sort.Slice(children, func(a, b int) bool {
			na, nb := tree.Nodes[children[a]], tree.Nodes[children[b]]
			if na.Order != nb.Order {
				return na.Order < nb.Order
			}
			return na.ID < nb.ID
		})
	}

	if err := tree.checkAcyclic(); err != nil {
		return nil, err
	}

	return tree, nil
}

// nestByDeclaredDepth re-parents root-level entries using their declared
// depth. TOC entries that live in separate content files share no
// identifier prefix at all, so prefix parentage leaves them all as root
// children even when the book declares a hierarchy; in that case the
// declared depth run is the only record of it, and an entry belongs under
// the closest preceding root-level entry with a shallower depth.
func (t *Tree) nestByDeclaredDepth() {
	children := append([]int(nil), t.Nodes[0].Children...)
	sort.Slice(children, func(a, b int) bool {
		na, nb := t.Nodes[children[a]], t.Nodes[children[b]]
		if na.Order != nb.Order {
			return na.Order < nb.Order
		}
		return na.ID < nb.ID
	})

	var kept []int
	var stack []int
	for _, index := range children {
		depth := t.Nodes[index].Depth
		for len(stack) > 0 && t.Nodes[stack[len(stack)-1]].Depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			t.Nodes[index].Parent = parent
			t.Nodes[parent].Children = append(t.Nodes[parent].Children, index)
		} else {
			kept = append(kept, index)
		}
		stack = append(stack, index)
	}
	t.Nodes[0].Children = kept
}

// checkAcyclic verifies every node reaches the root. Prefix-based parentage
// cannot produce a cycle, so a failure here means corrupted data.
func (t *Tree) checkAcyclic() error {
	for i := range t.Nodes {
		steps := 0
		for n := i; n != 0; n = t.Nodes[n].Parent {
			steps++
			if steps > len(t.Nodes) {
				return fmt.Errorf("content entry %q is part of a cycle", t.Nodes[i].ID)
			}
		}
	}
	return nil
}

// Lookup returns the node index for a canonical identifier.
func (t *Tree) Lookup(id string) (int, bool) {
	index, ok := t.byID[canonical(segments(id))]
	return index, ok
}
