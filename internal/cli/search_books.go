package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// SearchBooksCommand lists a user's books, optionally filtered by text.
type SearchBooksCommand struct {
	Root string
	User string
	Text string
}

// NewSearchBooksCommand creates a new SearchBooksCommand.
func NewSearchBooksCommand() *SearchBooksCommand {
	return &SearchBooksCommand{}
}

// ParseFlags parses command line flags.
func (cmd *SearchBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	fs.StringVar(&cmd.Root, "root", "", "Library folder (defaults to LIBRARY_FOLDER or ~/Library)")
	fs.StringVar(&cmd.User, "user", "", "User whose library to search")
	fs.StringVar(&cmd.Text, "text", "", "Substring matched against title, ISBNs and authors (empty lists everything)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search -user NAME [-text TEXT]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the user's books, filtered by case-sensitive containment.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.User == "" {
		fs.Usage()
		return fmt.Errorf("search requires -user")
	}
	return nil
}

// Run executes the command.
func (cmd *SearchBooksCommand) Run() error {
	found, err := newCatalogs(cmd.Root).books.Books(cmd.User, cmd.Text)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No books found")
		return nil
	}
	for _, book := range found {
		fmt.Printf("%s  %q by %s (%d pages)\n",
			book.UUID, book.Title, strings.Join(book.Authors, ", "), book.Pages)
	}
	return nil
}
