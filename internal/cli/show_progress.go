package cli

import (
	"flag"
	"fmt"
	"os"
)

// ShowProgressCommand prints the projection for a book's current reading
// session.
type ShowProgressCommand struct {
	Root     string
	User     string
	BookUUID string
}

// NewShowProgressCommand creates a new ShowProgressCommand.
func NewShowProgressCommand() *ShowProgressCommand {
	return &ShowProgressCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ShowProgressCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)

	fs.StringVar(&cmd.Root, "root", "", "Library folder (defaults to LIBRARY_FOLDER or ~/Library)")
	fs.StringVar(&cmd.User, "user", "", "User the book belongs to")
	fs.StringVar(&cmd.BookUUID, "book", "", "UUID of the book being read")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s progress -user NAME -book UUID\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show pace and finish-date projections for the book's current\n")
		fmt.Fprintf(os.Stderr, "reading session.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.User == "" || cmd.BookUUID == "" {
		fs.Usage()
		return fmt.Errorf("progress requires -user and -book")
	}
	return nil
}

// Run executes the command.
func (cmd *ShowProgressCommand) Run() error {
	catalogs := newCatalogs(cmd.Root)

	session, err := catalogs.sessions.Current(cmd.User, cmd.BookUUID)
	if err != nil {
		return err
	}
	projection, err := catalogs.progress.Progress(cmd.User, cmd.BookUUID, session.UUID)
	if err != nil {
		return err
	}

	fmt.Printf("Page %d of %d (%d%%)\n", projection.LastReadPage, projection.PagesTotal, projection.ReadPercentage)
	fmt.Printf("Average pages per reading day: %d\n", projection.AveragePagesPerDay)
	fmt.Printf("Estimated reading days left:   %d\n", projection.EstimatedReadDaysLeft)
	fmt.Printf("Estimated calendar days left:  %d\n", projection.EstimatedDaysLeft)
	if projection.EstimatedFinishDate != "" {
		fmt.Printf("Projected finish date:         %s\n", projection.EstimatedFinishDate)
	}
	if projection.Deadline != "" {
		fmt.Printf("Deadline:                      %s\n", projection.Deadline)
	}
	return nil
}
