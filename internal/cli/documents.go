package cli

import (
	"fmt"
	"log"

	"github.com/mrlokans/kobo-notes/internal/kobo"
	"github.com/mrlokans/kobo-notes/internal/toc"
)

// buildDocuments runs the extraction pipeline for every book in the
// reader's database: TOC reconstruction, highlight matching, assembly.
// Books with no highlights produce no document, and a data anomaly in one
// book never aborts processing of the others.
func buildDocuments(reader *kobo.Reader, verbose bool) ([]toc.Document, error) {
	books, err := reader.ListBooks()
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	var docs []toc.Document
	for _, book := range books {
		doc, err := buildDocument(reader, book)
		if err != nil {
			log.Printf("Skipping book %q: %v", book.Title, err)
			continue
		}
		if doc == nil {
			continue
		}
		if verbose && doc.Warnings > 0 {
			log.Printf("Book %q: recovered from %d row-level anomalies", book.Title, doc.Warnings)
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}

// buildDocument returns nil without error for books that have no
// highlights at all.
func buildDocument(reader *kobo.Reader, book kobo.Book) (*toc.Document, error) {
	highlights, err := reader.ListHighlights(book.ContentID)
	if err != nil {
		return nil, err
	}
	if len(highlights) == 0 {
		return nil, nil
	}

	entries, err := reader.ListContentEntries(book.ContentID)
	if err != nil {
		return nil, err
	}

	tocEntries := make([]toc.Entry, 0, len(entries))
	for _, entry := range entries {
		tocEntries = append(tocEntries, toc.Entry{
			ID:    entry.MatchID,
			Title: entry.Title,
			Depth: entry.Depth,
			Order: entry.VolumeIndex,
		})
	}

	tree, err := toc.Build(book.ContentID, tocEntries)
	if err != nil {
		return nil, err
	}

	tocHighlights := make([]toc.Highlight, 0, len(highlights))
	for _, h := range highlights {
		tocHighlights = append(tocHighlights, toc.Highlight{
			Text:     h.Text,
			Note:     h.Annotation,
			Location: h.ContentID,
			Position: h.ChapterProgress,
			Created:  h.DateCreated,
		})
	}

	unmatched := tree.MatchHighlights(tocHighlights)
	doc := toc.Assemble(book.Title, book.Author, tree, unmatched)

	return &doc, nil
}
