package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/kobo-notes/internal/toc"
	"github.com/mrlokans/kobo-notes/internal/utils"
)

// MarkdownExporter writes one Markdown file per assembled document.
type MarkdownExporter struct {
	OutputDir string
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{OutputDir: outputDir}
}

// Export writes every document with at least one highlight to the output
// directory. Books with no highlights are skipped rather than producing
// empty files. Returns the path of each written file alongside counters.
func (e *MarkdownExporter) Export(docs []toc.Document) ([]string, ExportResult, error) {
	result := ExportResult{}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return nil, result, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, doc := range docs {
		if doc.HighlightCount() == 0 {
			result.BooksSkipped++
			continue
		}

		filename := utils.SanitizeFilename(doc.Title) + ".md"
		path := filepath.Join(e.OutputDir, filename)

		if err := os.WriteFile(path, []byte(RenderMarkdown(doc)), 0644); err != nil {
			return written, result, fmt.Errorf("failed to write %s: %w", path, err)
		}

		written = append(written, path)
		result.BooksProcessed++
		result.HighlightsProcessed += doc.HighlightCount()
	}

	return written, result, nil
}

// RenderMarkdown serializes one document: the book title as the top
// heading, section headings at their clamped depth, each highlight as a
// blockquote with its optional note and timestamp, and a trailing
// Uncategorized section for highlights that matched no TOC node.
func RenderMarkdown(doc toc.Document) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# %s\n\n", doc.Title)
	if doc.Author != "" {
		fmt.Fprintf(&builder, "**Author:** %s\n\n", doc.Author)
	}
	builder.WriteString("---\n\n")

	for _, section := range doc.Sections {
		fmt.Fprintf(&builder, "%s %s\n\n", strings.Repeat("#", section.Level), section.Heading)
		for _, h := range section.Highlights {
			builder.WriteString(formatHighlight(h))
			builder.WriteString("\n")
		}
	}

	if len(doc.Uncategorized) > 0 {
		builder.WriteString("## Uncategorized\n\n")
		for _, h := range doc.Uncategorized {
			builder.WriteString(formatHighlight(h))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

func formatHighlight(h toc.Highlight) string {
	var builder strings.Builder

	for _, line := range strings.Split(strings.TrimRight(h.Text, "\n"), "\n") {
		fmt.Fprintf(&builder, "> %s\n", line)
	}

	if h.Note != "" {
		fmt.Fprintf(&builder, "\n**Note:** %s\n", h.Note)
	}

	if h.Created != "" {
		fmt.Fprintf(&builder, "\n*%s*\n", h.Created)
	}

	return builder.String()
}
