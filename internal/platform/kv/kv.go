// Package kv provides the single-key blob store backing the order repository.
package kv

import "context"

// Store persists one opaque payload under a fixed key.
type Store interface {
	// Load returns the stored payload. ok is false when nothing has been
	// written yet; that is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	// Save overwrites the stored payload.
	Save(ctx context.Context, data []byte) error
}
