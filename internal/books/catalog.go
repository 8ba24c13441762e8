// Package books layers library-level validation on top of the generic book
// store: duplicate-ISBN rejection, text search and the guard that keeps a
// book from being deleted while reading history exists for it.
package books

import (
	"errors"
	"log"
	"strings"

	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/storage"
)

var (
	// ErrBookNotFound reports a book uuid with no record behind it.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookAlreadyExists reports another book of the same user carrying
	// the same non-empty ISBN-10 or ISBN-13.
	ErrBookAlreadyExists = errors.New("book already exists")
	// ErrBookHasReadingSession refuses deletion of a book whose reading
	// session still holds dated entries.
	ErrBookHasReadingSession = errors.New("book has reading session entries")
)

// ReadingSessions is the slice of the session catalog the book catalog
// needs: listing the sessions recorded under one book.
type ReadingSessions interface {
	ForBook(user, bookUUID string) ([]entities.ReadingSession, error)
}

// Catalog provides per-user book CRUD and search.
type Catalog struct {
	books    *storage.Store[entities.Book]
	sessions ReadingSessions
}

// NewCatalog creates a book catalog over the given store. sessions backs
// the deletion guard.
func NewCatalog(books *storage.Store[entities.Book], sessions ReadingSessions) *Catalog {
	return &Catalog{
		books:    books,
		sessions: sessions,
	}
}

// Books lists the user's books. A non-empty searchText keeps only books
// containing it in the title, either ISBN or the author names; matching is
// case-sensitive.
func (c *Catalog) Books(user, searchText string) ([]entities.Book, error) {
	log.Printf("Look for books for user %s", user)

	if searchText == "" {
		return c.books.List(user, nil)
	}
	return c.books.List(user, func(book entities.Book) bool {
		return matchesSearchText(book, searchText)
	})
}

// Create persists a new book under a server-generated identifier.
func (c *Catalog) Create(user string, book entities.Book) (entities.Book, error) {
	log.Printf("Add new book for user %s", user)

	duplicate, err := c.hasBookWithSameISBN(user, book)
	if err != nil {
		return entities.Book{}, err
	}
	if duplicate {
		return entities.Book{}, ErrBookAlreadyExists
	}
	return c.books.Create(user, book)
}

// Get returns the user's book with the given uuid.
func (c *Catalog) Get(user, uuid string) (entities.Book, error) {
	log.Printf("Look for book for user %s with uuid %s", user, uuid)

	book, found, err := c.books.Get(user, uuid)
	if err != nil {
		return entities.Book{}, err
	}
	if !found {
		return entities.Book{}, ErrBookNotFound
	}
	return book, nil
}

// Update replaces the book stored under uuid. The path uuid is
// authoritative: any identifier inside book is discarded, both for the
// duplicate-ISBN check and for the persisted record.
func (c *Catalog) Update(user, uuid string, book entities.Book) (string, error) {
	log.Printf("Update book for user %s with uuid %s", user, uuid)

	book = book.WithUUID(uuid)
	duplicate, err := c.hasBookWithSameISBN(user, book)
	if err != nil {
		return "", err
	}
	if duplicate {
		return "", ErrBookAlreadyExists
	}

	updated, err := c.books.Update(user, uuid, book)
	if err != nil {
		return "", err
	}
	if !updated {
		return "", ErrBookNotFound
	}
	return uuid, nil
}

// Delete removes the book stored under uuid, refusing while any reading
// session for it holds at least one dated entry.
func (c *Catalog) Delete(user, uuid string) error {
	log.Printf("Delete book for user %s with uuid %s", user, uuid)

	sessions, err := c.sessions.ForBook(user, uuid)
	if err != nil {
		return err
	}
	for _, session := range sessions {
		if len(session.DateReadingSessions) > 0 {
			return ErrBookHasReadingSession
		}
	}

	deleted, err := c.books.Delete(user, uuid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookNotFound
	}
	return nil
}

func (c *Catalog) hasBookWithSameISBN(user string, candidate entities.Book) (bool, error) {
	existing, err := c.books.List(user, nil)
	if err != nil {
		return false, err
	}
	for _, book := range existing {
		if book.UUID != candidate.UUID && haveSameISBN(book, candidate) {
			return true, nil
		}
	}
	return false, nil
}

func haveSameISBN(existing, candidate entities.Book) bool {
	return (existing.ISBN10 != "" && existing.ISBN10 == candidate.ISBN10) ||
		(existing.ISBN13 != "" && existing.ISBN13 == candidate.ISBN13)
}

func matchesSearchText(book entities.Book, searchText string) bool {
	return strings.Contains(book.Title, searchText) ||
		strings.Contains(book.ISBN10, searchText) ||
		strings.Contains(book.ISBN13, searchText) ||
		strings.Contains(strings.Join(book.Authors, " "), searchText)
}
