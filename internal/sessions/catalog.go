// Package sessions manages reading sessions and the dated progress entries
// embedded in them. Sessions are stored per user and filtered by owning
// book in memory; at most one session may exist per user and book.
package sessions

import (
	"errors"
	"log"
	"regexp"
	"sort"
	"time"

	"github.com/espressoprogrammer/library/internal/books"
	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/storage"
)

var (
	// ErrReadingSessionNotFound reports a missing session, or one that
	// belongs to a different book than the caller named.
	ErrReadingSessionNotFound = errors.New("reading session not found")
	// ErrReadingSessionAlreadyExists refuses a second session for a book.
	ErrReadingSessionAlreadyExists = errors.New("reading session already exists")
	// ErrDateReadingSessionNotFound reports that no dated entry carries
	// the requested date.
	ErrDateReadingSessionNotFound = errors.New("date reading session not found")
	// ErrDateReadingSessionAlreadyExists refuses a second entry for the
	// same date.
	ErrDateReadingSessionAlreadyExists = errors.New("date reading session already exists")
	// ErrDateReadingSessionInvalid reports an entry whose date is not a
	// real yyyy-MM-dd calendar date or whose page is not positive.
	ErrDateReadingSessionInvalid = errors.New("date reading session invalid")
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const isoDateLayout = "2006-01-02"

// Books is the slice of the book store the session catalog needs: the
// existence check backing every session operation.
type Books interface {
	Get(user, uuid string) (entities.Book, bool, error)
}

// Catalog provides per-user reading-session CRUD and dated-entry editing.
type Catalog struct {
	sessions *storage.Store[entities.ReadingSession]
	books    Books
}

// NewCatalog creates a session catalog over the given store. books backs
// the book-existence checks.
func NewCatalog(sessions *storage.Store[entities.ReadingSession], books Books) *Catalog {
	return &Catalog{
		sessions: sessions,
		books:    books,
	}
}

// ForBook lists the user's reading sessions recorded under one book.
func (c *Catalog) ForBook(user, bookUUID string) ([]entities.ReadingSession, error) {
	log.Printf("Look for reading sessions for user %s", user)

	return c.sessions.List(user, func(session entities.ReadingSession) bool {
		return session.BookUUID == bookUUID
	})
}

// Current returns the session currently open for the book.
func (c *Catalog) Current(user, bookUUID string) (entities.ReadingSession, error) {
	log.Printf("Look for current reading session for user %s", user)

	if err := c.requireBook(user, bookUUID); err != nil {
		return entities.ReadingSession{}, err
	}
	sessions, err := c.ForBook(user, bookUUID)
	if err != nil {
		return entities.ReadingSession{}, err
	}
	if len(sessions) == 0 {
		return entities.ReadingSession{}, ErrReadingSessionNotFound
	}
	return sessions[0], nil
}

// Create opens a reading session for the book. Dated entries supplied at
// creation are discarded; progress is recorded one day at a time through
// AddDateEntry.
func (c *Catalog) Create(user, bookUUID string, session entities.ReadingSession) (entities.ReadingSession, error) {
	log.Printf("Add new reading session for user %s", user)

	if err := c.requireBook(user, bookUUID); err != nil {
		return entities.ReadingSession{}, err
	}
	existing, err := c.ForBook(user, bookUUID)
	if err != nil {
		return entities.ReadingSession{}, err
	}
	if len(existing) > 0 {
		return entities.ReadingSession{}, ErrReadingSessionAlreadyExists
	}

	session.BookUUID = bookUUID
	session.DateReadingSessions = []entities.DateReadingSession{}
	return c.sessions.Create(user, session)
}

// Get returns the session with the given uuid, provided it belongs to the
// named book.
func (c *Catalog) Get(user, bookUUID, uuid string) (entities.ReadingSession, error) {
	log.Printf("Look for reading session for user %s with uuid %s", user, uuid)

	session, found, err := c.sessions.Get(user, uuid)
	if err != nil {
		return entities.ReadingSession{}, err
	}
	if !found || session.BookUUID != bookUUID {
		return entities.ReadingSession{}, ErrReadingSessionNotFound
	}
	return session, nil
}

// Update replaces the session stored under uuid, keeping it bound to the
// named book.
func (c *Catalog) Update(user, bookUUID, uuid string, session entities.ReadingSession) (string, error) {
	log.Printf("Update reading session for user %s with uuid %s", user, uuid)

	if _, err := c.Get(user, bookUUID, uuid); err != nil {
		return "", err
	}
	session.BookUUID = bookUUID
	if err := c.persist(user, uuid, session); err != nil {
		return "", err
	}
	return uuid, nil
}

// Delete removes the session stored under uuid.
func (c *Catalog) Delete(user, bookUUID, uuid string) error {
	log.Printf("Delete reading session for user %s with uuid %s", user, uuid)

	if _, err := c.Get(user, bookUUID, uuid); err != nil {
		return err
	}
	deleted, err := c.sessions.Delete(user, uuid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReadingSessionNotFound
	}
	return nil
}

// AddDateEntry appends a dated entry to the session and re-sorts the
// sequence ascending by date. At most one entry may exist per date.
func (c *Catalog) AddDateEntry(user, bookUUID, uuid string, entry entities.DateReadingSession) (entities.DateReadingSession, error) {
	log.Printf("Add date reading session for user %s on %s", user, entry.Date)

	if err := validateDateEntry(entry); err != nil {
		return entities.DateReadingSession{}, err
	}
	session, err := c.Get(user, bookUUID, uuid)
	if err != nil {
		return entities.DateReadingSession{}, err
	}
	for _, existing := range session.DateReadingSessions {
		if existing.Date == entry.Date {
			return entities.DateReadingSession{}, ErrDateReadingSessionAlreadyExists
		}
	}

	session.DateReadingSessions = append(session.DateReadingSessions, entry)
	sortDateEntries(session.DateReadingSessions)
	if err := c.persist(user, uuid, session); err != nil {
		return entities.DateReadingSession{}, err
	}
	return entry, nil
}

// DateEntry returns the session's entry for the given date.
func (c *Catalog) DateEntry(user, bookUUID, uuid, date string) (entities.DateReadingSession, error) {
	log.Printf("Look for date reading session for user %s on %s", user, date)

	session, err := c.Get(user, bookUUID, uuid)
	if err != nil {
		return entities.DateReadingSession{}, err
	}
	for _, entry := range session.DateReadingSessions {
		if entry.Date == date {
			return entry, nil
		}
	}
	return entities.DateReadingSession{}, ErrDateReadingSessionNotFound
}

// UpdateDateEntry replaces the entry recorded for date. The path date is
// authoritative over the date inside entry.
func (c *Catalog) UpdateDateEntry(user, bookUUID, uuid, date string, entry entities.DateReadingSession) (string, error) {
	log.Printf("Update date reading session for user %s on %s", user, date)

	if err := validateDateEntry(entry); err != nil {
		return "", err
	}
	session, err := c.Get(user, bookUUID, uuid)
	if err != nil {
		return "", err
	}

	for i, existing := range session.DateReadingSessions {
		if existing.Date == date {
			entry.Date = date
			session.DateReadingSessions[i] = entry
			if err := c.persist(user, uuid, session); err != nil {
				return "", err
			}
			return date, nil
		}
	}
	return "", ErrDateReadingSessionNotFound
}

// DeleteDateEntry removes the entry recorded for date.
func (c *Catalog) DeleteDateEntry(user, bookUUID, uuid, date string) error {
	log.Printf("Delete date reading session for user %s on %s", user, date)

	session, err := c.Get(user, bookUUID, uuid)
	if err != nil {
		return err
	}

	kept := make([]entities.DateReadingSession, 0, len(session.DateReadingSessions))
	for _, existing := range session.DateReadingSessions {
		if existing.Date != date {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(session.DateReadingSessions) {
		return ErrDateReadingSessionNotFound
	}

	session.DateReadingSessions = kept
	return c.persist(user, uuid, session)
}

func (c *Catalog) persist(user, uuid string, session entities.ReadingSession) error {
	updated, err := c.sessions.Update(user, uuid, session)
	if err != nil {
		return err
	}
	if !updated {
		return ErrReadingSessionNotFound
	}
	return nil
}

func (c *Catalog) requireBook(user, bookUUID string) error {
	_, found, err := c.books.Get(user, bookUUID)
	if err != nil {
		return err
	}
	if !found {
		return books.ErrBookNotFound
	}
	return nil
}

func validateDateEntry(entry entities.DateReadingSession) error {
	if !isoDatePattern.MatchString(entry.Date) {
		return ErrDateReadingSessionInvalid
	}
	if _, err := time.Parse(isoDateLayout, entry.Date); err != nil {
		return ErrDateReadingSessionInvalid
	}
	if entry.LastReadPage <= 0 {
		return ErrDateReadingSessionInvalid
	}
	return nil
}

// ISO dates sort chronologically as plain strings.
func sortDateEntries(entries []entities.DateReadingSession) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
