// Package blob provides the object storage contract the ingest and
// delivery pipelines depend on, with local-filesystem and S3-compatible
// implementations.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob: object not found")

// ByteRange is an inclusive byte window over a stored object.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// Object is an opened read of a stored object. Size is always the total
// object size, even when Body only covers a requested range.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Store persists and retrieves opaque byte sequences by key.
//
// Put streams the payload; implementations never buffer the whole object in
// memory, and a failed Put is never observable through Get. Delete against
// a missing key reports ErrNotFound where the backend can tell (remote
// stores may treat deletes as idempotent).
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Get(ctx context.Context, key string, rng *ByteRange) (*Object, error)
	Stat(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
