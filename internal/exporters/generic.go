package exporters

import "github.com/mrlokans/kobo-notes/internal/entities"

// BookExporter persists converted books to storage.
type BookExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed      int `json:"books_processed"`
	HighlightsProcessed int `json:"highlights_processed"`
	BooksSkipped        int `json:"books_skipped"`
	BooksFailed         int `json:"books_failed"`
}
