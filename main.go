package main

import (
	"fmt"
	"os"

	"github.com/espressoprogrammer/library/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args := os.Args[2:]

	var cmd command
	switch os.Args[1] {
	case "add-book":
		cmd = cli.NewAddBookCommand()
	case "search":
		cmd = cli.NewSearchBooksCommand()
	case "log-reading":
		cmd = cli.NewLogReadingCommand()
	case "progress":
		cmd = cli.NewShowProgressCommand()
	case "version":
		fmt.Printf("library %s (%s)\n", Version, Commit)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  add-book     Add a book to a user's library\n")
	fmt.Fprintf(os.Stderr, "  search       List or search a user's books\n")
	fmt.Fprintf(os.Stderr, "  log-reading  Record a day's reading progress\n")
	fmt.Fprintf(os.Stderr, "  progress     Show projections for the current reading session\n")
	fmt.Fprintf(os.Stderr, "  version      Print version information\n\n")
	fmt.Fprintf(os.Stderr, "Run '%s COMMAND -h' for command options.\n", os.Args[0])
}
