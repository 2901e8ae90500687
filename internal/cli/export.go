package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/kobo-notes/internal/config"
	"github.com/mrlokans/kobo-notes/internal/exporters"
	"github.com/mrlokans/kobo-notes/internal/kobo"
)

// ExportCommand exports Kobo highlights to per-book Markdown files.
type ExportCommand struct {
	DatabasePath string
	OutputDir    string
	Verbose      bool
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	cfg := config.NewConfig()
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Kobo.DatabasePath, "Path to the KoboReader.sqlite file")
	fs.StringVar(&cmd.OutputDir, "output", cfg.Output.Dir, "Output directory for Markdown files")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export Kobo highlights and annotations to Markdown.\n\n")
		fmt.Fprintf(os.Stderr, "This command:\n")
		fmt.Fprintf(os.Stderr, "  1. Opens the device database strictly read-only\n")
		fmt.Fprintf(os.Stderr, "  2. Rebuilds each book's table of contents\n")
		fmt.Fprintf(os.Stderr, "  3. Places every highlight under the section it belongs to\n")
		fmt.Fprintf(os.Stderr, "  4. Writes one Markdown file per book with highlights\n\n")
		fmt.Fprintf(os.Stderr, "The database is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  <device mount>/.kobo/KoboReader.sqlite\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db /media/KOBOeReader/.kobo/KoboReader.sqlite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db ./KoboReader.sqlite -output ~/notes/highlights\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatabasePath == "" {
		return fmt.Errorf("required flag -db not provided")
	}

	return nil
}

// Run executes the export command
func (cmd *ExportCommand) Run() error {
	fmt.Println("📚 Kobo Highlights Export")
	fmt.Println("=========================")

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	reader, err := kobo.NewReader(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	fmt.Printf("📁 Database: %s\n", reader.Path())
	fmt.Printf("📁 Output: %s\n", cmd.OutputDir)

	docs, err := buildDocuments(reader, cmd.Verbose)
	if err != nil {
		return err
	}

	fmt.Printf("\n🔍 Found %d books with highlights\n", len(docs))

	exporter := exporters.NewMarkdownExporter(cmd.OutputDir)
	written, result, err := exporter.Export(docs)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Printf("  📄 %s\n", filepath.Base(path))
	}

	fmt.Printf("\n✅ Exported %d books (%d highlights) to %s\n",
		result.BooksProcessed, result.HighlightsProcessed, cmd.OutputDir)

	return nil
}
