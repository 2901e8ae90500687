package toc

// Markdown allows six heading levels; level 1 is reserved for the book
// title, so sections clamp to the remaining depth.
const maxHeadingLevel = 6

// Section is one emitted heading with the highlights attached to it.
type Section struct {
	Heading    string
	Level      int
	Highlights []Highlight
}

// Document is the assembled, ordered output for one book, ready to be
// serialized by a writer.
type Document struct {
	Title         string
	Author        string
	Sections      []Section
	Uncategorized []Highlight
	Warnings      int
}

// HighlightCount returns the total number of highlights in the document.
func (d Document) HighlightCount() int {
	n := len(d.Uncategorized)
	for _, s := range d.Sections {
		n += len(s.Highlights)
	}
	return n
}

// Assemble walks the tree depth-first in child order and produces the
// ordered section list for one book. A node is emitted only when it or a
// descendant carries at least one highlight; branches with none are pruned
// entirely. Untitled nodes never produce headings; their highlights fold
// into the nearest emitted ancestor section, or into the uncategorized
// bucket when there is none.
func Assemble(title, author string, tree *Tree, uncategorized []Highlight) Document {
	doc := Document{
		Title:         title,
		Author:        author,
		Uncategorized: uncategorized,
		Warnings:      tree.Warnings,
	}

	counts := make([]int, len(tree.Nodes))
	var count func(int) int
	count = func(i int) int {
		c := len(tree.Nodes[i].Highlights)
		for _, child := range tree.Nodes[i].Children {
			c += count(child)
		}
		counts[i] = c
		return c
	}
	count(0)

	var walk func(index, section int)
	walk = func(index, section int) {
		node := &tree.Nodes[index]
		if index != 0 {
			if counts[index] == 0 {
				return
			}
			if node.Title != "" {
				level := node.Depth + 1
				if level > maxHeadingLevel {
					level = maxHeadingLevel
				}
				if level < 2 {
					level = 2
				}
				doc.Sections = append(doc.Sections, Section{
					Heading:    node.Title,
					Level:      level,
					Highlights: node.Highlights,
				})
				section = len(doc.Sections) - 1
			} else if len(node.Highlights) > 0 {
				// folding merges two already-sorted lists; re-sort so the
				// receiving list stays chronological
				if section >= 0 {
					merged := append(doc.Sections[section].Highlights, node.Highlights...)
					sortChronological(merged)
					doc.Sections[section].Highlights = merged
				} else {
					doc.Uncategorized = append(doc.Uncategorized, node.Highlights...)
					sortChronological(doc.Uncategorized)
				}
			}
		}
		for _, child := range node.Children {
			walk(child, section)
		}
	}
	walk(0, -1)

	return doc
}
