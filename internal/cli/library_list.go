package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/kobo-notes/internal/config"
	"github.com/mrlokans/kobo-notes/internal/database"
	"github.com/mrlokans/kobo-notes/internal/entities"
)

// LibraryListCommand prints the contents of the local library database.
type LibraryListCommand struct {
	LibraryPath string
	Title       string
	Author      string
}

func NewLibraryListCommand() *LibraryListCommand {
	return &LibraryListCommand{}
}

// ParseFlags parses command line flags
func (cmd *LibraryListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("library-list", flag.ExitOnError)

	cfg := config.NewConfig()
	fs.StringVar(&cmd.LibraryPath, "library", cfg.Library.DatabasePath, "Path to the local library database")
	fs.StringVar(&cmd.Title, "title", "", "Show the highlights of the book with this title")
	fs.StringVar(&cmd.Author, "author", "", "Author of the book selected with -title")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s library-list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the books in the local library database, or the highlights\n")
		fmt.Fprintf(os.Stderr, "of a single book selected with -title (and -author).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s library-list\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s library-list -title 'Blue Lantern' -author 'Nora Finch'\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the list command
func (cmd *LibraryListCommand) Run() error {
	db, err := database.NewDatabase(cmd.LibraryPath)
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer db.Close()

	if cmd.Title != "" {
		book, err := db.GetBookByTitleAndAuthor(cmd.Title, cmd.Author)
		if err != nil {
			return fmt.Errorf("book %q by %q not found: %w", cmd.Title, cmd.Author, err)
		}
		fmt.Print(renderBookDetails(*book))
		return nil
	}

	books, err := db.GetAllBooks()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	fmt.Print(renderLibrarySummary(books))

	return nil
}

func renderLibrarySummary(books []entities.Book) string {
	if len(books) == 0 {
		return "The library is empty.\n"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "📚 %d books in the library\n\n", len(books))
	for _, book := range books {
		fmt.Fprintf(&builder, "  %s by %s (%d highlights)\n", book.Title, book.Author, len(book.Highlights))
	}
	return builder.String()
}

func renderBookDetails(book entities.Book) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "📖 %s by %s (%d highlights)\n", book.Title, book.Author, len(book.Highlights))

	for _, h := range book.Highlights {
		fmt.Fprintf(&builder, "\n> %s\n", h.Text)
		if h.Note != "" {
			fmt.Fprintf(&builder, "  Note: %s\n", h.Note)
		}
		if h.Chapter != "" {
			fmt.Fprintf(&builder, "  Chapter: %s\n", h.Chapter)
		}
		if !h.HighlightedAt.IsZero() {
			fmt.Fprintf(&builder, "  Date: %s\n", h.HighlightedAt.Format("2006-01-02 15:04"))
		}
	}

	return builder.String()
}
