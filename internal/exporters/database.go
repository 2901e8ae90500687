package exporters

import (
	"log"

	"github.com/mrlokans/kobo-notes/internal/database"
	"github.com/mrlokans/kobo-notes/internal/entities"
)

// DatabaseExporter saves converted books into the local library store.
type DatabaseExporter struct {
	db *database.Database
}

func NewDatabaseExporter(db *database.Database) *DatabaseExporter {
	return &DatabaseExporter{db: db}
}

func (e *DatabaseExporter) Export(books []entities.Book) (ExportResult, error) {
	result := ExportResult{}

	for i := range books {
		book := &books[i]
		if err := e.db.SaveBook(book); err != nil {
			log.Printf("Failed to save book %q by %s to database: %v", book.Title, book.Author, err)
			result.BooksFailed++
			continue
		}
		result.BooksProcessed++
		result.HighlightsProcessed += len(book.Highlights)
	}

	return result, nil
}

// Compile-time interface implementation check
var _ BookExporter = (*DatabaseExporter)(nil)
