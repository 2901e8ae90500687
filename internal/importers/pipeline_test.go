package importers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/exporters"
	"github.com/mrlokans/kobo-notes/internal/toc"
)

type mockExporter struct {
	exportedBooks []entities.Book
	returnError   error
}

func (m *mockExporter) Export(books []entities.Book) (exporters.ExportResult, error) {
	m.exportedBooks = books
	if m.returnError != nil {
		return exporters.ExportResult{}, m.returnError
	}

	highlightCount := 0
	for _, b := range books {
		highlightCount += len(b.Highlights)
	}

	return exporters.ExportResult{
		BooksProcessed:      len(books),
		HighlightsProcessed: highlightCount,
	}, nil
}

func sampleDocuments() []toc.Document {
	return []toc.Document{
		{
			Title:  "The Paper Orchard",
			Author: "Samir Hale",
			Sections: []toc.Section{
				{Heading: "Chapter 1", Level: 2, Highlights: []toc.Highlight{
					{Text: "first", Location: "b/c1", Created: "2024-01-15T10:30:00.000"},
					{Text: "second", Location: "b/c1", Created: "2024-01-16T08:00:00.000"},
				}},
			},
			Uncategorized: []toc.Highlight{
				{Text: "orphan", Location: "b/zzz", Created: "2024-02-01T12:00:00.000"},
			},
		},
		{Title: "Untouched Book"},
	}
}

func TestPipeline_Import(t *testing.T) {
	exporter := &mockExporter{}
	pipeline := NewPipeline(exporter)

	result, err := pipeline.Import(NewKoboConverter(sampleDocuments(), "/tmp/KoboReader.sqlite"))

	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed, "books without highlights are not imported")
	assert.Equal(t, 3, result.HighlightsProcessed)

	require.Len(t, exporter.exportedBooks, 1)
	book := exporter.exportedBooks[0]
	assert.Equal(t, "The Paper Orchard", book.Title)
	assert.Equal(t, "kobo", book.Source.Name)
	for _, h := range book.Highlights {
		assert.Equal(t, "kobo", h.Source.Name)
	}
}

func TestKoboConverter_Convert(t *testing.T) {
	converter := NewKoboConverter(sampleDocuments(), "/tmp/KoboReader.sqlite")

	books, source := converter.Convert()

	assert.Equal(t, "kobo", source.Name)
	assert.Equal(t, "/tmp/KoboReader.sqlite", source.FilePath)

	require.Len(t, books, 1)
	require.Len(t, books[0].Highlights, 3)

	matched := books[0].Highlights[0]
	assert.Equal(t, "first", matched.Text)
	assert.Equal(t, "Chapter 1", matched.Chapter)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), matched.HighlightedAt)
	assert.NotEmpty(t, matched.ExternalID)

	orphan := books[0].Highlights[2]
	assert.Equal(t, "orphan", orphan.Text)
	assert.Empty(t, orphan.Chapter, "uncategorized highlights carry no chapter")
}

func TestParseKoboTime(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-01-15T10:30:00.000", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"not a time", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseKoboTime(tt.input), "input %q", tt.input)
	}
}
