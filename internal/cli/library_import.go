package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/kobo-notes/internal/config"
	"github.com/mrlokans/kobo-notes/internal/database"
	"github.com/mrlokans/kobo-notes/internal/exporters"
	"github.com/mrlokans/kobo-notes/internal/importers"
	"github.com/mrlokans/kobo-notes/internal/kobo"
)

// LibraryImportCommand imports Kobo highlights into the local library
// database, optionally exporting Markdown as well.
type LibraryImportCommand struct {
	DatabasePath   string
	LibraryPath    string
	OutputDir      string
	ExportMarkdown bool
	Verbose        bool
}

func NewLibraryImportCommand() *LibraryImportCommand {
	return &LibraryImportCommand{}
}

// ParseFlags parses command line flags
func (cmd *LibraryImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("library-import", flag.ExitOnError)

	cfg := config.NewConfig()
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Kobo.DatabasePath, "Path to the KoboReader.sqlite file")
	fs.StringVar(&cmd.LibraryPath, "library", cfg.Library.DatabasePath, "Path to the local library database")
	fs.StringVar(&cmd.OutputDir, "output", "", "Output directory for Markdown files (if specified, also exports Markdown)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s library-import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import Kobo highlights into the local library database.\n\n")
		fmt.Fprintf(os.Stderr, "Re-importing the same device database is idempotent: highlights\n")
		fmt.Fprintf(os.Stderr, "already in the library are recognized and not duplicated.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s library-import -db /media/KOBOeReader/.kobo/KoboReader.sqlite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s library-import -db ./KoboReader.sqlite -output ~/notes/highlights\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatabasePath == "" {
		return fmt.Errorf("required flag -db not provided")
	}

	cmd.ExportMarkdown = cmd.OutputDir != ""

	return nil
}

// Run executes the import command
func (cmd *LibraryImportCommand) Run() error {
	fmt.Println("📚 Kobo Library Import")
	fmt.Println("======================")

	reader, err := kobo.NewReader(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	fmt.Printf("📁 Source: %s\n", reader.Path())
	fmt.Printf("📁 Library: %s\n", cmd.LibraryPath)

	docs, err := buildDocuments(reader, cmd.Verbose)
	if err != nil {
		return err
	}

	fmt.Printf("\n🔍 Found %d books with highlights\n", len(docs))

	db, err := database.NewDatabase(cmd.LibraryPath)
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer db.Close()

	pipeline := importers.NewPipeline(exporters.NewDatabaseExporter(db))
	result, err := pipeline.Import(importers.NewKoboConverter(docs, cmd.DatabasePath))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("💾 Saved %d books (%d highlights) to library",
		result.BooksProcessed, result.HighlightsProcessed)
	if result.BooksFailed > 0 {
		fmt.Printf(", %d failed", result.BooksFailed)
	}
	fmt.Println()

	if cmd.ExportMarkdown {
		exporter := exporters.NewMarkdownExporter(cmd.OutputDir)
		_, mdResult, err := exporter.Export(docs)
		if err != nil {
			return err
		}
		fmt.Printf("📄 Exported %d Markdown files to %s\n", mdResult.BooksProcessed, cmd.OutputDir)
	}

	fmt.Println("\n✅ Import complete!")
	return nil
}
