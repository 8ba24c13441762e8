package books

import (
	"encoding/json"
	"fmt"

	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/storage"
)

const kind = "books"

// NewStore builds the per-user book store rooted at root. Records land
// under <root>/<user>/books/<uuid>.json.
func NewStore(root string) *storage.Store[entities.Book] {
	codec := storage.Codec[entities.Book]{
		Encode: encodeBook,
		Decode: decodeBook,
	}
	return storage.NewStore(root, kind, codec, entities.Book.WithUUID)
}

func encodeBook(book entities.Book) ([]byte, error) {
	return json.MarshalIndent(book, "", "  ")
}

func decodeBook(data []byte) (entities.Book, error) {
	var book entities.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return entities.Book{}, fmt.Errorf("%w: %v", storage.ErrMalformedRecord, err)
	}
	if book.Title == "" {
		return entities.Book{}, fmt.Errorf("%w: book has no title", storage.ErrMalformedRecord)
	}
	if book.Pages <= 0 {
		return entities.Book{}, fmt.Errorf("%w: book page count must be positive", storage.ErrMalformedRecord)
	}
	return book, nil
}
