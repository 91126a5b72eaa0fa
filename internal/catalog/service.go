package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/videxhq/videx-backend/pkg/blob"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
)

// Service exposes catalog reads and mutations, including blob reclamation
// on delete.
type Service interface {
	List(ctx context.Context) Document
	Like(ctx context.Context, id string) (int, error)
	View(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store *Store
	blobs blob.Store
	logg  *logger.Logger
}

// NewService constructs a catalog service backed by the document store and
// the blob store used for media reclamation.
func NewService(store *Store, blobs blob.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	return &service{store: store, blobs: blobs, logg: logg}, nil
}

func (s *service) List(ctx context.Context) Document {
	return s.store.List()
}

func (s *service) Like(ctx context.Context, id string) (int, error) {
	likes, err := s.store.IncrementLikes(id)
	if err != nil {
		return 0, mapStoreErr(err)
	}
	return likes, nil
}

func (s *service) View(ctx context.Context, id string) (string, error) {
	views, err := s.store.IncrementViews(id)
	if err != nil {
		return "", mapStoreErr(err)
	}
	return views, nil
}

// Delete removes the entry and then reclaims its blobs. A failed blob
// delete is logged and swallowed; the catalog removal already succeeded.
func (s *service) Delete(ctx context.Context, id string) error {
	entry, err := s.store.Remove(id)
	if err != nil {
		return mapStoreErr(err)
	}

	for _, key := range []string{entry.BlobKey, entry.ThumbKey} {
		if key == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blob.ErrNotFound) {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithBlobKey(ctx, key), "failed to delete blob for removed entry")
			}
		}
	}
	return nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "video not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting catalog failed")
}
