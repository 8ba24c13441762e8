// Command generate_demo seeds a demo library with sample data from public
// domain books.
// Usage: go run cmd/generate_demo/main.go [-root path/to/library] [-user name]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/espressoprogrammer/library/internal/books"
	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/sessions"
)

const (
	defaultDemoRoot = "./demo/library"
	defaultDemoUser = "demo"
)

func main() {
	root := flag.String("root", defaultDemoRoot, "path to the demo library folder")
	user := flag.String("user", defaultDemoUser, "user to seed the library for")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *root)

	// Delete any existing demo library to start fresh
	if err := os.RemoveAll(*root); err != nil {
		log.Fatalf("Failed to remove existing demo library: %v", err)
	}

	booksStore := books.NewStore(*root)
	sessionsStore := sessions.NewStore(*root)
	sessionsCatalog := sessions.NewCatalog(sessionsStore, booksStore)
	booksCatalog := books.NewCatalog(booksStore, sessionsCatalog)

	seeded := make(map[string]entities.Book)
	for _, book := range publicDomainBooks() {
		created, err := booksCatalog.Create(*user, book)
		if err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}
		log.Printf("Saved: %s (%d pages)", created.Title, created.Pages)
		seeded[created.Title] = created
	}

	// Give one book an in-flight reading session so progress projections
	// have something to chew on.
	if book, ok := seeded["Meditations"]; ok {
		seedReadingSession(sessionsCatalog, *user, book)
	}

	log.Println("Demo library generated successfully!")
}

func seedReadingSession(catalog *sessions.Catalog, user string, book entities.Book) {
	session, err := catalog.Create(user, book.UUID, entities.ReadingSession{
		Deadline: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	})
	if err != nil {
		log.Printf("Failed to create reading session for %s: %v", book.Title, err)
		return
	}

	entries := []entities.DateReadingSession{
		{Date: daysAgo(6), LastReadPage: 18, Bookmark: "Book One"},
		{Date: daysAgo(4), LastReadPage: 41},
		{Date: daysAgo(3), LastReadPage: 55, Bookmark: "On mortality"},
		{Date: daysAgo(1), LastReadPage: 72},
	}
	for _, entry := range entries {
		if _, err := catalog.AddDateEntry(user, book.UUID, session.UUID, entry); err != nil {
			log.Printf("Failed to record entry for %s: %v", entry.Date, err)
		}
	}
	log.Printf("Recorded %d reading days for %s", len(entries), book.Title)
}

func daysAgo(days int) string {
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

func publicDomainBooks() []entities.Book {
	return []entities.Book{
		{
			Title:   "Meditations",
			Authors: []string{"Marcus Aurelius"},
			ISBN13:  "9780140449334",
			Pages:   254,
		},
		{
			Title:   "The Art of War",
			Authors: []string{"Sun Tzu"},
			ISBN13:  "9781590302255",
			Pages:   273,
		},
		{
			Title:   "Walden",
			Authors: []string{"Henry David Thoreau"},
			ISBN10:  "0486284956",
			Pages:   216,
		},
		{
			Title:   "The Origin of Species",
			Authors: []string{"Charles Darwin"},
			ISBN13:  "9780451529060",
			Pages:   576,
		},
	}
}
