package kobo

// Book is one library volume from the Kobo content table.
type Book struct {
	ContentID string
	Title     string
	Author    string
}

// ContentEntry is one table-of-contents row of a book.
type ContentEntry struct {
	// ContentID is the raw row identifier, including the trailing "-N"
	// depth suffix Kobo appends to TOC rows.
	ContentID string
	// MatchID is the ContentID with the depth suffix stripped. Highlight
	// locations reference this form of the identifier.
	MatchID string
	Title   string
	// Depth is the declared TOC level from the "-N" suffix (1 = top).
	Depth int
	// VolumeIndex is the document-order key for the row.
	VolumeIndex int
}

// Highlight is one Bookmark row that carries highlighted text.
type Highlight struct {
	Text       string
	Annotation string
	// ContentID anchors the highlight within the book's content structure.
	ContentID string
	// ChapterProgress is the 0.0-1.0 position within the containing chapter.
	ChapterProgress float64
	DateCreated     string
}
