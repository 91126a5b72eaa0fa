package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/videxhq/videx-backend/pkg/blob"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
)

// Window is an opened read over a blob: the whole object when Range is
// nil, otherwise exactly the requested byte window. Size is always the
// total object size.
type Window struct {
	Body        io.ReadCloser
	Range       *blob.ByteRange
	Size        int64
	ContentType string
}

// Service resolves Range requests against the blob store without ever
// loading an object into memory.
type Service interface {
	Open(ctx context.Context, key, rangeHeader string) (*Window, error)
}

type service struct {
	blobs blob.Store
}

func NewService(blobs blob.Store) (Service, error) {
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	return &service{blobs: blobs}, nil
}

func (s *service) Open(ctx context.Context, key, rangeHeader string) (*Window, error) {
	size, err := s.blobs.Stat(ctx, key)
	if err != nil {
		return nil, mapBlobErr(err)
	}

	rng, err := ParseRange(rangeHeader, size)
	if err != nil {
		return nil, err
	}

	obj, err := s.blobs.Get(ctx, key, rng)
	if err != nil {
		return nil, mapBlobErr(err)
	}

	return &Window{Body: obj.Body, Range: rng, Size: size, ContentType: obj.ContentType}, nil
}

func mapBlobErr(err error) error {
	if errors.Is(err, blob.ErrNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reading media failed")
}
