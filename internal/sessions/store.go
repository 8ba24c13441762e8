package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/espressoprogrammer/library/internal/entities"
	"github.com/espressoprogrammer/library/internal/storage"
)

const kind = "reading-sessions"

// NewStore builds the per-user reading-session store rooted at root.
// Records land under <root>/<user>/reading-sessions/<uuid>.json with their
// dated entries embedded inline.
func NewStore(root string) *storage.Store[entities.ReadingSession] {
	codec := storage.Codec[entities.ReadingSession]{
		Encode: encodeSession,
		Decode: decodeSession,
	}
	return storage.NewStore(root, kind, codec, entities.ReadingSession.WithUUID)
}

func encodeSession(session entities.ReadingSession) ([]byte, error) {
	return json.MarshalIndent(session, "", "  ")
}

func decodeSession(data []byte) (entities.ReadingSession, error) {
	var session entities.ReadingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return entities.ReadingSession{}, fmt.Errorf("%w: %v", storage.ErrMalformedRecord, err)
	}
	if session.BookUUID == "" {
		return entities.ReadingSession{}, fmt.Errorf("%w: reading session has no book uuid", storage.ErrMalformedRecord)
	}
	for _, dateSession := range session.DateReadingSessions {
		if dateSession.Date == "" {
			return entities.ReadingSession{}, fmt.Errorf("%w: date reading session has no date", storage.ErrMalformedRecord)
		}
		if dateSession.LastReadPage <= 0 {
			return entities.ReadingSession{}, fmt.Errorf("%w: date reading session page must be positive", storage.ErrMalformedRecord)
		}
	}
	return session, nil
}
