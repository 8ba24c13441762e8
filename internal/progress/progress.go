// Package progress turns a reading session's dated entries and the owning
// book's page count into pace and finish-date projections. The estimation
// itself is a pure function; the Service wires it to the catalogs.
package progress

import (
	"log"
	"sort"
	"time"

	"github.com/espressoprogrammer/library/internal/books"
	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/sessions"
)

const isoDateLayout = "2006-01-02"

// BookSource resolves the owning book.
type BookSource interface {
	Get(user, uuid string) (entities.Book, bool, error)
}

// SessionSource resolves the reading session under a book.
type SessionSource interface {
	Get(user, bookUUID, uuid string) (entities.ReadingSession, error)
}

// Service computes projections for persisted books and sessions.
type Service struct {
	books    BookSource
	sessions SessionSource
}

// NewService creates a progress service over the given sources.
func NewService(books BookSource, sessions SessionSource) *Service {
	return &Service{
		books:    books,
		sessions: sessions,
	}
}

// Progress loads the book and session and derives a fresh projection.
// Nothing is persisted.
func (s *Service) Progress(user, bookUUID, uuid string) (entities.ReadingSessionProgress, error) {
	log.Printf("Compute reading session progress for user %s with uuid %s", user, uuid)

	book, found, err := s.books.Get(user, bookUUID)
	if err != nil {
		return entities.ReadingSessionProgress{}, err
	}
	if !found {
		return entities.ReadingSessionProgress{}, books.ErrBookNotFound
	}

	session, err := s.sessions.Get(user, bookUUID, uuid)
	if err != nil {
		return entities.ReadingSessionProgress{}, err
	}
	return Estimate(book, session, time.Now())
}

// Estimate derives the projection from the session's dated entries, sorted
// ascending by date. The last read page is taken from the chronologically
// latest entry, which is not necessarily the numerically largest page
// value: a later entry may legitimately record an earlier page.
//
// An empty entry sequence yields ErrDateReadingSessionNotFound. A latest
// entry whose page would make the average pace zero (only reachable
// through hand-edited records) yields ErrDateReadingSessionInvalid instead
// of dividing by zero.
func Estimate(book entities.Book, session entities.ReadingSession, today time.Time) (entities.ReadingSessionProgress, error) {
	entries := make([]entities.DateReadingSession, len(session.DateReadingSessions))
	copy(entries, session.DateReadingSessions)
	if len(entries) == 0 {
		return entities.ReadingSessionProgress{}, sessions.ErrDateReadingSessionNotFound
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	firstEntry, lastEntry := entries[0], entries[len(entries)-1]
	firstReadDate, err := time.Parse(isoDateLayout, firstEntry.Date)
	if err != nil {
		return entities.ReadingSessionProgress{}, sessions.ErrDateReadingSessionInvalid
	}
	lastReadDate, err := time.Parse(isoDateLayout, lastEntry.Date)
	if err != nil {
		return entities.ReadingSessionProgress{}, sessions.ErrDateReadingSessionInvalid
	}
	lastReadPage := lastEntry.LastReadPage

	averagePagesPerDay := divideHalfUp(lastReadPage, len(entries))
	if averagePagesPerDay <= 0 {
		return entities.ReadingSessionProgress{}, sessions.ErrDateReadingSessionInvalid
	}

	readPercentage := divideHalfUp(lastReadPage*100, book.Pages)

	remainingPages := book.Pages - lastReadPage
	// A positive remainder below one day's pace would round the whole
	// projection down to nothing.
	if remainingPages > 0 && remainingPages < averagePagesPerDay {
		remainingPages = averagePagesPerDay
	}
	estimatedReadDaysLeft := divideHalfUp(remainingPages, averagePagesPerDay)

	// Calendar days from first to last entry, both inclusive.
	readPeriodDays := int(lastReadDate.Sub(firstReadDate).Hours()/24) + 1
	paceFactor := divideHalfUp(readPeriodDays, len(entries))
	estimatedDaysLeft := estimatedReadDaysLeft * paceFactor

	estimatedFinishDate := ""
	if estimatedReadDaysLeft > 0 {
		estimatedFinishDate = today.AddDate(0, 0, estimatedDaysLeft).Format(isoDateLayout)
	}

	return entities.ReadingSessionProgress{
		BookUUID:              book.UUID,
		LastReadPage:          lastReadPage,
		PagesTotal:            book.Pages,
		ReadPercentage:        readPercentage,
		AveragePagesPerDay:    averagePagesPerDay,
		EstimatedReadDaysLeft: estimatedReadDaysLeft,
		EstimatedDaysLeft:     estimatedDaysLeft,
		EstimatedFinishDate:   estimatedFinishDate,
		Deadline:              session.Deadline,
	}, nil
}

// divideHalfUp divides rounding halves away from zero; truncating here
// would drift every projection downward. den must be positive.
func divideHalfUp(num, den int) int {
	if num < 0 {
		return -divideHalfUp(-num, den)
	}
	return (2*num + den) / (2 * den)
}
