package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espressoprogrammer/library/internal/books"
	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/sessions"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestEstimateSingleEntry(t *testing.T) {
	book := entities.Book{UUID: "book-1", Title: "A Book", Pages: 400}
	session := entities.ReadingSession{
		BookUUID: "book-1",
		Deadline: "2019-03-01",
		DateReadingSessions: []entities.DateReadingSession{
			{Date: "2019-01-01", LastReadPage: 100},
		},
	}
	today := date("2019-01-05")

	projection, err := Estimate(book, session, today)
	require.NoError(t, err)

	assert.Equal(t, entities.ReadingSessionProgress{
		BookUUID:              "book-1",
		LastReadPage:          100,
		PagesTotal:            400,
		ReadPercentage:        25,
		AveragePagesPerDay:    100,
		EstimatedReadDaysLeft: 3,
		EstimatedDaysLeft:     3,
		EstimatedFinishDate:   "2019-01-08",
		Deadline:              "2019-03-01",
	}, projection)
}

func TestEstimateMultiEntryPacing(t *testing.T) {
	// Three reading days spread over 33 calendar days: the pace factor
	// stretches every reading-day estimate by 11.
	book := entities.Book{UUID: "book-1", Title: "A Long Book", Pages: 500}
	session := entities.ReadingSession{
		BookUUID: "book-1",
		DateReadingSessions: []entities.DateReadingSession{
			{Date: "2017-01-01", LastReadPage: 101},
			{Date: "2017-02-01", LastReadPage: 201},
			{Date: "2017-02-02", LastReadPage: 202},
		},
	}
	today := date("2017-02-03")

	projection, err := Estimate(book, session, today)
	require.NoError(t, err)

	assert.Equal(t, 202, projection.LastReadPage)
	assert.Equal(t, 67, projection.AveragePagesPerDay) // round(202/3)
	assert.Equal(t, 40, projection.ReadPercentage)     // round(202*100/500)
	assert.Equal(t, 4, projection.EstimatedReadDaysLeft)
	assert.Equal(t, 44, projection.EstimatedDaysLeft) // 4 reading days * pace 11
	assert.Equal(t, today.AddDate(0, 0, 44).Format("2006-01-02"), projection.EstimatedFinishDate)
}

func TestEstimateUsesChronologicallyLatestEntry(t *testing.T) {
	// A later entry may record an earlier page, e.g. after re-reading a
	// chapter. The projection follows the calendar, not the page numbers.
	book := entities.Book{UUID: "book-1", Title: "A Book", Pages: 400}
	session := entities.ReadingSession{
		BookUUID: "book-1",
		DateReadingSessions: []entities.DateReadingSession{
			{Date: "2020-01-02", LastReadPage: 120},
			{Date: "2020-01-01", LastReadPage: 150},
		},
	}

	projection, err := Estimate(book, session, date("2020-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 120, projection.LastReadPage)
}

func TestEstimateClampsSmallRemainder(t *testing.T) {
	// 10 pages left at 100 pages per day: without the clamp the
	// projection would report zero days for an unfinished book.
	book := entities.Book{UUID: "book-1", Title: "A Book", Pages: 110}
	session := entities.ReadingSession{
		BookUUID: "book-1",
		DateReadingSessions: []entities.DateReadingSession{
			{Date: "2019-01-01", LastReadPage: 100},
		},
	}

	projection, err := Estimate(book, session, date("2019-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 100, projection.AveragePagesPerDay)
	assert.Equal(t, 1, projection.EstimatedReadDaysLeft)
	assert.Equal(t, 1, projection.EstimatedDaysLeft)
	assert.Equal(t, "2019-01-03", projection.EstimatedFinishDate)
}

func TestEstimateFinishedBook(t *testing.T) {
	book := entities.Book{UUID: "book-1", Title: "A Book", Pages: 100}
	session := entities.ReadingSession{
		BookUUID: "book-1",
		DateReadingSessions: []entities.DateReadingSession{
			{Date: "2019-01-01", LastReadPage: 100},
		},
	}

	projection, err := Estimate(book, session, date("2019-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 100, projection.ReadPercentage)
	assert.Equal(t, 0, projection.EstimatedReadDaysLeft)
	assert.Equal(t, 0, projection.EstimatedDaysLeft)
	assert.Empty(t, projection.EstimatedFinishDate)
}

func TestEstimateEdgeCases(t *testing.T) {
	book := entities.Book{UUID: "book-1", Title: "A Book", Pages: 400}

	t.Run("no dated entries", func(t *testing.T) {
		session := entities.ReadingSession{BookUUID: "book-1"}
		_, err := Estimate(book, session, date("2019-01-01"))
		assert.ErrorIs(t, err, sessions.ErrDateReadingSessionNotFound)
	})

	t.Run("zero average pace", func(t *testing.T) {
		// Only reachable through a hand-edited record; the catalog
		// refuses non-positive pages on the way in.
		session := entities.ReadingSession{
			BookUUID: "book-1",
			DateReadingSessions: []entities.DateReadingSession{
				{Date: "2019-01-01", LastReadPage: 0},
			},
		}
		_, err := Estimate(book, session, date("2019-01-02"))
		assert.ErrorIs(t, err, sessions.ErrDateReadingSessionInvalid)
	})

	t.Run("pace rounds to zero", func(t *testing.T) {
		// One page over three reading days rounds the average down to
		// zero; same guard applies.
		session := entities.ReadingSession{
			BookUUID: "book-1",
			DateReadingSessions: []entities.DateReadingSession{
				{Date: "2019-01-01", LastReadPage: 1},
				{Date: "2019-01-02", LastReadPage: 1},
				{Date: "2019-01-03", LastReadPage: 1},
			},
		}
		_, err := Estimate(book, session, date("2019-01-04"))
		assert.ErrorIs(t, err, sessions.ErrDateReadingSessionInvalid)
	})

	t.Run("unparseable entry date", func(t *testing.T) {
		session := entities.ReadingSession{
			BookUUID: "book-1",
			DateReadingSessions: []entities.DateReadingSession{
				{Date: "not-a-date", LastReadPage: 100},
			},
		}
		_, err := Estimate(book, session, date("2019-01-02"))
		assert.ErrorIs(t, err, sessions.ErrDateReadingSessionInvalid)
	})
}

func TestDivideHalfUp(t *testing.T) {
	tests := []struct {
		num, den, expected int
	}{
		{num: 100, den: 1, expected: 100},
		{num: 202, den: 3, expected: 67},  // 67.33 rounds down
		{num: 33, den: 3, expected: 11},   // exact
		{num: 7, den: 2, expected: 4},     // 3.5 rounds up
		{num: 5, den: 2, expected: 3},     // 2.5 rounds up, not to even
		{num: 1, den: 3, expected: 0},     // 0.33 rounds down
		{num: 2, den: 3, expected: 1},     // 0.67 rounds up
		{num: 0, den: 5, expected: 0},     // zero numerator
		{num: -7, den: 2, expected: -4},   // halves round away from zero
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, divideHalfUp(tt.num, tt.den),
			"divideHalfUp(%d, %d)", tt.num, tt.den)
	}
}

func TestServiceProgress(t *testing.T) {
	newService := func(t *testing.T) (*Service, *books.Catalog, *sessions.Catalog) {
		t.Helper()
		root := t.TempDir()
		booksStore := books.NewStore(root)
		sessionsCatalog := sessions.NewCatalog(sessions.NewStore(root), booksStore)
		return NewService(booksStore, sessionsCatalog),
			books.NewCatalog(booksStore, sessionsCatalog),
			sessionsCatalog
	}

	t.Run("computes a projection for persisted records", func(t *testing.T) {
		service, booksCatalog, sessionsCatalog := newService(t)
		book, err := booksCatalog.Create("john", entities.Book{
			Title:   "A Book",
			Authors: []string{},
			Pages:   400,
		})
		require.NoError(t, err)
		session, err := sessionsCatalog.Create("john", book.UUID, entities.ReadingSession{})
		require.NoError(t, err)
		_, err = sessionsCatalog.AddDateEntry("john", book.UUID, session.UUID,
			entities.DateReadingSession{Date: "2019-01-01", LastReadPage: 100})
		require.NoError(t, err)

		projection, err := service.Progress("john", book.UUID, session.UUID)
		require.NoError(t, err)
		assert.Equal(t, book.UUID, projection.BookUUID)
		assert.Equal(t, 25, projection.ReadPercentage)
		assert.Equal(t, 3, projection.EstimatedDaysLeft)
		assert.Equal(t,
			time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
			projection.EstimatedFinishDate)
	})

	t.Run("missing book", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Progress("john", "no-such-book", "no-such-session")
		assert.ErrorIs(t, err, books.ErrBookNotFound)
	})

	t.Run("missing session", func(t *testing.T) {
		service, booksCatalog, _ := newService(t)
		book, err := booksCatalog.Create("john", entities.Book{
			Title:   "A Book",
			Authors: []string{},
			Pages:   400,
		})
		require.NoError(t, err)

		_, err = service.Progress("john", book.UUID, "no-such-session")
		assert.ErrorIs(t, err, sessions.ErrReadingSessionNotFound)
	})

	t.Run("session without entries", func(t *testing.T) {
		service, booksCatalog, sessionsCatalog := newService(t)
		book, err := booksCatalog.Create("john", entities.Book{
			Title:   "A Book",
			Authors: []string{},
			Pages:   400,
		})
		require.NoError(t, err)
		session, err := sessionsCatalog.Create("john", book.UUID, entities.ReadingSession{})
		require.NoError(t, err)

		_, err = service.Progress("john", book.UUID, session.UUID)
		assert.ErrorIs(t, err, sessions.ErrDateReadingSessionNotFound)
	})
}
