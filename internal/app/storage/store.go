package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when the requested key does not exist.
// Callers must always be able to tell absence apart from other I/O
// failures, so every implementation maps its own missing-object signal
// to this sentinel.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a key-addressed byte store with list-by-prefix.
// The pipeline uses two logical buckets: a working bucket for raw
// audio and external job results, and a document bucket for finished
// transcripts.
type ObjectStore interface {
	// Put writes an object. Size may be -1 when unknown, in which case
	// the implementation streams the reader to the end.
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error

	// Get reads the whole object. Returns ErrObjectNotFound when the
	// key does not exist.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// List returns all keys under the given prefix, in no particular order.
	List(ctx context.Context, bucket, prefix string) ([]string, error)

	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, bucket, key string) error

	// Exists reports whether the key is present
	Exists(ctx context.Context, bucket, key string) (bool, error)

	// URL returns an addressable location for the object, suitable for
	// handing to external services
	URL(bucket, key string) string
}
