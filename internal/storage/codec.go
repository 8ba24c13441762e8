package storage

import "errors"

// ErrMalformedRecord reports bytes that are not a valid encoding of the
// target entity kind. Decoding is all-or-nothing: an entity comes back
// fully formed or not at all.
var ErrMalformedRecord = errors.New("malformed record")

// Codec serializes one entity kind. Each catalog supplies its own pair of
// functions, so the store never has to infer the concrete type at runtime.
type Codec[T any] struct {
	Encode func(T) ([]byte, error)
	Decode func([]byte) (T, error)
}
