package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/sessions"
)

// LogReadingCommand records one day's progress on a book, opening a
// reading session first when none exists yet.
type LogReadingCommand struct {
	Root     string
	User     string
	BookUUID string
	Date     string
	Page     int
	Bookmark string
	Deadline string
}

// NewLogReadingCommand creates a new LogReadingCommand.
func NewLogReadingCommand() *LogReadingCommand {
	return &LogReadingCommand{}
}

// ParseFlags parses command line flags.
func (cmd *LogReadingCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("log-reading", flag.ExitOnError)

	fs.StringVar(&cmd.Root, "root", "", "Library folder (defaults to LIBRARY_FOLDER or ~/Library)")
	fs.StringVar(&cmd.User, "user", "", "User the book belongs to")
	fs.StringVar(&cmd.BookUUID, "book", "", "UUID of the book being read")
	fs.StringVar(&cmd.Date, "date", time.Now().Format("2006-01-02"), "Reading date (yyyy-MM-dd)")
	fs.IntVar(&cmd.Page, "page", 0, "Last page reached")
	fs.StringVar(&cmd.Bookmark, "bookmark", "", "Bookmark note (optional)")
	fs.StringVar(&cmd.Deadline, "deadline", "", "Session deadline, used only when opening a new session (optional)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s log-reading -user NAME -book UUID -page N [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Record a day's reading progress. A reading session is opened\n")
		fmt.Fprintf(os.Stderr, "automatically when the book has none.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.User == "" || cmd.BookUUID == "" || cmd.Page <= 0 {
		fs.Usage()
		return fmt.Errorf("log-reading requires -user, -book and a positive -page")
	}
	return nil
}

// Run executes the command.
func (cmd *LogReadingCommand) Run() error {
	catalogs := newCatalogs(cmd.Root)

	session, err := catalogs.sessions.Current(cmd.User, cmd.BookUUID)
	if errors.Is(err, sessions.ErrReadingSessionNotFound) {
		session, err = catalogs.sessions.Create(cmd.User, cmd.BookUUID, entities.ReadingSession{
			Deadline: cmd.Deadline,
		})
	}
	if err != nil {
		return err
	}

	entry := entities.DateReadingSession{
		Date:         cmd.Date,
		LastReadPage: cmd.Page,
		Bookmark:     cmd.Bookmark,
	}
	if _, err := catalogs.sessions.AddDateEntry(cmd.User, cmd.BookUUID, session.UUID, entry); err != nil {
		return err
	}

	fmt.Printf("Recorded page %d on %s for book %s\n", cmd.Page, cmd.Date, cmd.BookUUID)
	return nil
}
