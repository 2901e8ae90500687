package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

// setupTestDB creates a fresh library database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleBook() *entities.Book {
	return &entities.Book{
		Title:  "The Paper Orchard",
		Author: "Samir Hale",
		Source: entities.Source{Name: "kobo"},
		Highlights: []entities.Highlight{
			{
				Text:          "A curious passage about seasons",
				Chapter:       "Chapter 1",
				HighlightedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			},
		},
	}
}

func TestDatabase(t *testing.T) {
	db := setupTestDB(t)

	t.Run("seeds the kobo source", func(t *testing.T) {
		source, err := db.GetSourceByName("kobo")
		require.NoError(t, err)
		assert.Equal(t, "Kobo", source.DisplayName)
	})

	t.Run("SaveBook creates new book", func(t *testing.T) {
		book := sampleBook()
		err := db.SaveBook(book)
		require.NoError(t, err)
		assert.NotZero(t, book.ID)
		assert.NotZero(t, book.SourceID)
		assert.NotZero(t, book.Highlights[0].ID)
		assert.Equal(t, book.ID, book.Highlights[0].BookID)
	})

	t.Run("GetBookByTitleAndAuthor retrieves saved book", func(t *testing.T) {
		book, err := db.GetBookByTitleAndAuthor("The Paper Orchard", "Samir Hale")
		require.NoError(t, err)
		assert.Equal(t, "Samir Hale", book.Author)
		require.Len(t, book.Highlights, 1)
		assert.Equal(t, "Chapter 1", book.Highlights[0].Chapter)
	})

	t.Run("re-saving the same book does not duplicate highlights", func(t *testing.T) {
		require.NoError(t, db.SaveBook(sampleBook()))

		book, err := db.GetBookByTitleAndAuthor("The Paper Orchard", "Samir Hale")
		require.NoError(t, err)
		assert.Len(t, book.Highlights, 1)
	})

	t.Run("new highlights merge into existing book", func(t *testing.T) {
		book := sampleBook()
		book.Highlights = append(book.Highlights, entities.Highlight{
			Text:          "Another passage",
			Chapter:       "Chapter 2",
			HighlightedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, db.SaveBook(book))

		stored, err := db.GetBookByTitleAndAuthor("The Paper Orchard", "Samir Hale")
		require.NoError(t, err)
		assert.Len(t, stored.Highlights, 2)
	})

	t.Run("GetAllBooks returns every book", func(t *testing.T) {
		other := &entities.Book{Title: "Blue Lantern", Author: "Nora Finch", Source: entities.Source{Name: "kobo"}}
		require.NoError(t, db.SaveBook(other))

		books, err := db.GetAllBooks()
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})
}
