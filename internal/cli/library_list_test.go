package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kobo-notes/internal/database"
	"github.com/mrlokans/kobo-notes/internal/entities"
)

func TestRenderLibrarySummary(t *testing.T) {
	t.Run("empty library", func(t *testing.T) {
		assert.Equal(t, "The library is empty.\n", renderLibrarySummary(nil))
	})

	t.Run("books with highlight counts", func(t *testing.T) {
		books := []entities.Book{
			{Title: "Blue Lantern", Author: "Nora Finch", Highlights: []entities.Highlight{{Text: "a"}, {Text: "b"}}},
			{Title: "The Paper Orchard", Author: "Samir Hale"},
		}

		out := renderLibrarySummary(books)

		assert.Contains(t, out, "2 books in the library")
		assert.Contains(t, out, "Blue Lantern by Nora Finch (2 highlights)")
		assert.Contains(t, out, "The Paper Orchard by Samir Hale (0 highlights)")
	})
}

func TestRenderBookDetails(t *testing.T) {
	book := entities.Book{
		Title:  "Blue Lantern",
		Author: "Nora Finch",
		Highlights: []entities.Highlight{
			{
				Text:          "A line worth keeping",
				Note:          "look this up",
				Chapter:       "Chapter One",
				HighlightedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			},
			{Text: "An uncategorized line"},
		},
	}

	out := renderBookDetails(book)

	assert.Contains(t, out, "Blue Lantern by Nora Finch (2 highlights)")
	assert.Contains(t, out, "> A line worth keeping\n")
	assert.Contains(t, out, "Note: look this up")
	assert.Contains(t, out, "Chapter: Chapter One")
	assert.Contains(t, out, "Date: 2024-01-15 10:30")
	assert.Contains(t, out, "> An uncategorized line\n")
	assert.NotContains(t, out, "Chapter: \n")
}

func TestLibraryListing_RoundTrip(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	defer db.Close()

	book := &entities.Book{
		Title:  "Blue Lantern",
		Author: "Nora Finch",
		Source: entities.Source{Name: "kobo"},
		Highlights: []entities.Highlight{
			{Text: "kept", Chapter: "Chapter One", HighlightedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		},
	}
	require.NoError(t, db.SaveBook(book))

	books, err := db.GetAllBooks()
	require.NoError(t, err)
	summary := renderLibrarySummary(books)
	assert.Contains(t, summary, "1 books in the library")
	assert.Contains(t, summary, "Blue Lantern by Nora Finch (1 highlights)")

	saved, err := db.GetBookByTitleAndAuthor("Blue Lantern", "Nora Finch")
	require.NoError(t, err)
	details := renderBookDetails(*saved)
	assert.Contains(t, details, "> kept\n")
	assert.Contains(t, details, "Chapter: Chapter One")
}
