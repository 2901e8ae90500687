package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/kobo-notes/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Exporting is the default action
	if len(os.Args) < 2 || os.Args[1] == "export" {
		var args []string
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		cmd := cli.NewExportCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "library-import":
		cmd := cli.NewLibraryImportCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "library-list":
		cmd := cli.NewLibraryListCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("kobo-notes %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("kobo-notes - export Kobo highlights to structured Markdown\n\n")
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s [export] [options]        Export highlights to Markdown files\n", os.Args[0])
	fmt.Printf("  %s library-import [options]  Import highlights into the local library\n", os.Args[0])
	fmt.Printf("  %s library-list [options]    List books and highlights in the local library\n", os.Args[0])
	fmt.Printf("  %s version                   Print version information\n", os.Args[0])
	fmt.Printf("  %s help                      Show this help\n\n", os.Args[0])
	fmt.Printf("Run '%s <command> -h' for command-specific options.\n", os.Args[0])
}
