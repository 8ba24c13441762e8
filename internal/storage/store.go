// Package storage persists entities as JSON files, one file per entity
// under a per-user, per-kind directory. It knows nothing about the entity
// kinds themselves; catalogs configure it with a codec and an identifier
// re-stamping hook.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fileExtension = ".json"

// Store handles one entity kind for many users. Records live under
// <root>/<user>/<kind>/<uuid>.json. The store does not coordinate
// concurrent writers to the same record; the last write wins.
type Store[T any] struct {
	root   string
	kind   string
	codec  Codec[T]
	withID func(T, string) T
}

// NewStore creates a store rooted at root. kind names the subdirectory
// created under each user's folder. withID re-stamps an entity's
// identifier; the store uses it to make the file name authoritative over
// whatever identifier the caller passed in the entity itself.
func NewStore[T any](root, kind string, codec Codec[T], withID func(T, string) T) *Store[T] {
	return &Store[T]{
		root:   root,
		kind:   kind,
		codec:  codec,
		withID: withID,
	}
}

// List decodes every record in the user's directory, keeping the ones for
// which keep returns true. A nil keep keeps everything. Order is directory
// enumeration order; callers needing a specific order sort themselves.
// A single undecodable file fails the whole listing.
func (s *Store[T]) List(user string, keep func(T) bool) ([]T, error) {
	dir, err := s.ensureUserDir(user)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory %s: %w", dir, err)
	}

	items := []T{}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), fileExtension) {
			continue
		}
		item, err := s.read(filepath.Join(dir, dirEntry.Name()))
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(item) {
			items = append(items, item)
		}
	}
	return items, nil
}

// Create persists item under a freshly generated identifier and returns the
// persisted entity with that identifier stamped in. Identifiers are random
// UUIDs; collisions are not retried. Create never overwrites an existing
// record.
func (s *Store[T]) Create(user string, item T) (T, error) {
	var zero T
	dir, err := s.ensureUserDir(user)
	if err != nil {
		return zero, err
	}

	id := uuid.New().String()
	persisted := s.withID(item, id)
	if err := s.write(filepath.Join(dir, id+fileExtension), persisted); err != nil {
		return zero, err
	}
	return persisted, nil
}

// Get returns the entity stored under id. A missing record is reported via
// the bool, never as an error; errors are reserved for I/O and decode
// faults.
func (s *Store[T]) Get(user, id string) (T, bool, error) {
	var zero T
	dir, err := s.ensureUserDir(user)
	if err != nil {
		return zero, false, err
	}

	path := filepath.Join(dir, id+fileExtension)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	item, err := s.read(path)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// Update overwrites the record stored under id with item, re-stamping the
// entity's identifier to id regardless of the identifier item carries.
// It returns false and performs no write when no such record exists.
func (s *Store[T]) Update(user, id string, item T) (bool, error) {
	dir, err := s.ensureUserDir(user)
	if err != nil {
		return false, err
	}

	path := filepath.Join(dir, id+fileExtension)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := s.write(path, s.withID(item, id)); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the record stored under id, reporting false when it was
// not there to begin with.
func (s *Store[T]) Delete(user, id string) (bool, error) {
	dir, err := s.ensureUserDir(user)
	if err != nil {
		return false, err
	}

	path := filepath.Join(dir, id+fileExtension)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return true, nil
}

func (s *Store[T]) read(path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}
	item, err := s.codec.Decode(data)
	if err != nil {
		log.Printf("Failed to decode record %s: %v", path, err)
		return zero, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return item, nil
}

func (s *Store[T]) write(path string, item T) error {
	data, err := s.codec.Encode(item)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ensureUserDir returns the directory holding the user's records, creating
// it on first access.
func (s *Store[T]) ensureUserDir(user string) (string, error) {
	dir := filepath.Join(s.root, user, s.kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return dir, nil
}
