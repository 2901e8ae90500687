// Package importers turns reconciled highlight documents into library
// entities and hands them to an exporter.
package importers

import (
	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/exporters"
)

// Source provides metadata about where the books came from.
type Source struct {
	Name     string
	FilePath string
}

// Converter transforms source-specific data into library entities.
//
// Implementations:
//   - KoboConverter (kobo.go) - assembled Kobo highlight documents
type Converter interface {
	Convert() ([]entities.Book, Source)
}

// Pipeline imports books from a converter through an exporter.
type Pipeline struct {
	exporter exporters.BookExporter
}

func NewPipeline(exporter exporters.BookExporter) *Pipeline {
	return &Pipeline{exporter: exporter}
}

// Import converts and exports, stamping every book and highlight with the
// converter's source.
func (p *Pipeline) Import(converter Converter) (exporters.ExportResult, error) {
	books, source := converter.Convert()

	for i := range books {
		books[i].Source = entities.Source{Name: source.Name}
		for j := range books[i].Highlights {
			books[i].Highlights[j].Source = entities.Source{Name: source.Name}
		}
	}

	return p.exporter.Export(books)
}
