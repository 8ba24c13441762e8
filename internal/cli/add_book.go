package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/espressoprogrammer/library/internal/entities"
)

// AddBookCommand adds a book to a user's library.
type AddBookCommand struct {
	Root    string
	User    string
	Title   string
	Authors string
	ISBN10  string
	ISBN13  string
	Image   string
	Pages   int
}

// NewAddBookCommand creates a new AddBookCommand.
func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{}
}

// ParseFlags parses command line flags.
func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ExitOnError)

	fs.StringVar(&cmd.Root, "root", "", "Library folder (defaults to LIBRARY_FOLDER or ~/Library)")
	fs.StringVar(&cmd.User, "user", "", "User the book belongs to")
	fs.StringVar(&cmd.Title, "title", "", "Book title")
	fs.StringVar(&cmd.Authors, "authors", "", "Comma-separated author names")
	fs.StringVar(&cmd.ISBN10, "isbn10", "", "ISBN-10 (optional)")
	fs.StringVar(&cmd.ISBN13, "isbn13", "", "ISBN-13 (optional)")
	fs.StringVar(&cmd.Image, "image", "", "Cover image reference (optional)")
	fs.IntVar(&cmd.Pages, "pages", 0, "Total page count")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -user NAME -title TITLE -pages N [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the user's library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.User == "" || cmd.Title == "" || cmd.Pages <= 0 {
		fs.Usage()
		return fmt.Errorf("add-book requires -user, -title and a positive -pages")
	}
	return nil
}

// Run executes the command.
func (cmd *AddBookCommand) Run() error {
	book := entities.Book{
		ISBN10:  cmd.ISBN10,
		ISBN13:  cmd.ISBN13,
		Title:   cmd.Title,
		Authors: splitAuthors(cmd.Authors),
		Image:   cmd.Image,
		Pages:   cmd.Pages,
	}

	created, err := newCatalogs(cmd.Root).books.Create(cmd.User, book)
	if err != nil {
		return err
	}

	fmt.Printf("Added %q for %s (uuid %s)\n", created.Title, cmd.User, created.UUID)
	return nil
}

func splitAuthors(authors string) []string {
	if authors == "" {
		return []string{}
	}
	parts := strings.Split(authors, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
