// Package blobstore provides storage backends for fingerprint image blobs.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("blob not found")

// Store is an abstraction for reading and writing image blobs attached to
// reference records.
type Store interface {
	// Put writes a blob atomically under the given name.
	Put(ctx context.Context, name string, data []byte, contentType string) error
	// Open opens a blob for reading and reports its content type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// URL returns a stable reference for the blob, suitable for display
	// metadata. The URL is not guaranteed to be fetchable by this process.
	URL(name string) string
}
