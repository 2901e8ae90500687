package importers

import (
	"fmt"
	"time"

	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/toc"
)

// Kobo stores timestamps as ISO 8601 text with a few different shapes
// depending on firmware version.
var koboTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// KoboConverter flattens assembled highlight documents into library
// entities. Each highlight keeps the TOC heading it was reconciled under
// as its chapter; uncategorized highlights carry an empty chapter.
type KoboConverter struct {
	documents []toc.Document
	dbPath    string
}

func NewKoboConverter(documents []toc.Document, dbPath string) *KoboConverter {
	return &KoboConverter{documents: documents, dbPath: dbPath}
}

func (c *KoboConverter) Convert() ([]entities.Book, Source) {
	var books []entities.Book

	for _, doc := range c.documents {
		if doc.HighlightCount() == 0 {
			continue
		}

		book := entities.Book{
			Title:      doc.Title,
			Author:     doc.Author,
			Highlights: make([]entities.Highlight, 0, doc.HighlightCount()),
		}

		for _, section := range doc.Sections {
			for _, h := range section.Highlights {
				book.Highlights = append(book.Highlights, convertHighlight(h, section.Heading))
			}
		}
		for _, h := range doc.Uncategorized {
			book.Highlights = append(book.Highlights, convertHighlight(h, ""))
		}

		books = append(books, book)
	}

	return books, Source{Name: "kobo", FilePath: c.dbPath}
}

func convertHighlight(h toc.Highlight, chapter string) entities.Highlight {
	return entities.Highlight{
		Text:          h.Text,
		Note:          h.Note,
		Chapter:       chapter,
		Percent:       h.Position,
		HighlightedAt: parseKoboTime(h.Created),
		ExternalID:    fmt.Sprintf("%s|%s", h.Location, h.Created),
	}
}

// parseKoboTime returns the zero time for timestamps it cannot parse; the
// raw text is still preserved via the external ID.
func parseKoboTime(value string) time.Time {
	for _, layout := range koboTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Compile-time interface implementation check
var _ Converter = (*KoboConverter)(nil)
