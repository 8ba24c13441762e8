package entities

// Book is a single title in a user's library. The UUID is assigned by the
// store on creation; ISBNs and the cover image reference are optional.
type Book struct {
	UUID    string   `json:"uuid"`
	ISBN10  string   `json:"isbn10,omitempty"`
	ISBN13  string   `json:"isbn13,omitempty"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Image   string   `json:"image,omitempty"`
	Pages   int      `json:"pages"`
}

// WithUUID returns a copy of the book carrying the given identifier.
func (b Book) WithUUID(uuid string) Book {
	b.UUID = uuid
	return b
}
