package entities

// ReadingSession tracks progress through one book as a series of dated
// entries kept sorted ascending by date. At most one session exists per
// user and book at a time.
type ReadingSession struct {
	UUID                string               `json:"uuid"`
	BookUUID            string               `json:"bookUuid"`
	Deadline            string               `json:"deadline,omitempty"`
	DateReadingSessions []DateReadingSession `json:"dateReadingSessions"`
}

// WithUUID returns a copy of the session carrying the given identifier.
func (s ReadingSession) WithUUID(uuid string) ReadingSession {
	s.UUID = uuid
	return s
}

// DateReadingSession records one day's reading progress. Entries are value
// records; a session is updated by producing a new sorted sequence.
type DateReadingSession struct {
	Date         string `json:"date"`
	LastReadPage int    `json:"lastReadPage"`
	Bookmark     string `json:"bookmark,omitempty"`
}

// ReadingSessionProgress is derived from a book and its reading session on
// every request. It is never persisted.
type ReadingSessionProgress struct {
	BookUUID              string `json:"bookUuid"`
	LastReadPage          int    `json:"lastReadPage"`
	PagesTotal            int    `json:"pagesTotal"`
	ReadPercentage        int    `json:"readPercentage"`
	AveragePagesPerDay    int    `json:"averagePagesPerDay"`
	EstimatedReadDaysLeft int    `json:"estimatedReadDaysLeft"`
	EstimatedDaysLeft     int    `json:"estimatedDaysLeft"`
	EstimatedFinishDate   string `json:"estimatedFinishDate,omitempty"`
	Deadline              string `json:"deadline,omitempty"`
}
