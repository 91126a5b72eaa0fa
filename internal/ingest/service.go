package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/videxhq/videx-backend/internal/catalog"
	"github.com/videxhq/videx-backend/pkg/blob"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
	"github.com/videxhq/videx-backend/pkg/metrics"
)

const opUpload = "upload"

// Input carries one staged upload: the media stream plus its sibling form
// fields. Media reads from local staging, never from unbounded memory.
type Input struct {
	Media    io.Reader
	Filename string

	Title         string
	Description   string
	Channel       string
	ChannelAvatar string
	Duration      string
	Tags          string
	Kind          string
	Thumbnail     string
}

// Service commits one staged upload into the blob store and the catalog.
type Service interface {
	Ingest(ctx context.Context, in Input) (*catalog.Entry, error)
}

type service struct {
	catalog *catalog.Store
	blobs   blob.Store
	logg    *logger.Logger
	metrics *metrics.MediaMetrics
	now     func() time.Time
}

// NewService constructs the ingest pipeline.
func NewService(store *catalog.Store, blobs blob.Store, logg *logger.Logger, m *metrics.MediaMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	return &service{
		catalog: store,
		blobs:   blobs,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Ingest transfers the staged media into the blob store, decodes and stores
// an inline thumbnail when present, and only then commits a catalog entry.
// Any later failure reclaims blobs already committed, so the catalog never
// references a partially ingested upload.
func (s *service) Ingest(ctx context.Context, in Input) (*catalog.Entry, error) {
	start := s.now()
	entry, err := s.ingest(ctx, in)
	s.metrics.ObserveDuration(opUpload, s.now().Sub(start))
	if err != nil {
		s.metrics.IncFailure(opUpload)
		return nil, err
	}
	s.metrics.IncSuccess(opUpload)
	return entry, nil
}

func (s *service) ingest(ctx context.Context, in Input) (*catalog.Entry, error) {
	if in.Media == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no file uploaded")
	}

	blobKey := uuid.NewString() + mediaExtension(in.Filename)
	counted := &countingReader{r: in.Media}
	if err := s.blobs.Put(ctx, blobKey, counted, mediaContentType(blobKey)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "storing media failed")
	}
	s.metrics.AddBytes(opUpload, counted.n)

	thumbKey := ""
	thumbRef := catalog.PlaceholderThumbnail
	if IsThumbnailDataURL(in.Thumbnail) {
		data, subtype, err := DecodeThumbnail(in.Thumbnail)
		if err != nil {
			s.reclaim(ctx, blobKey)
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid thumbnail")
		}
		thumbKey = uuid.NewString() + "." + thumbnailExtension(subtype)
		if err := s.blobs.Put(ctx, thumbKey, bytes.NewReader(data), "image/"+subtype); err != nil {
			s.reclaim(ctx, blobKey)
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "storing thumbnail failed")
		}
		thumbRef = streamRef(thumbKey)
	}

	now := s.now()
	entry := catalog.Entry{
		ID:            uuid.NewString(),
		Title:         defaultString(in.Title, "Untitled"),
		Description:   in.Description,
		Channel:       defaultString(in.Channel, "Anonymous"),
		ChannelAvatar: defaultString(in.ChannelAvatar, "👤"),
		Views:         "0",
		Likes:         0,
		Date:          now.Format("02/01/2006"),
		Duration:      defaultString(in.Duration, "0:00"),
		Tags:          catalog.SplitTags(in.Tags),
		VideoURL:      streamRef(blobKey),
		Thumbnail:     thumbRef,
		Kind:          catalog.ParseKind(in.Kind),
		BlobKey:       blobKey,
		ThumbKey:      thumbKey,
		UploadedAt:    now.UnixMilli(),
	}

	if err := s.catalog.Insert(entry); err != nil {
		s.reclaim(ctx, blobKey, thumbKey)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving catalog failed")
	}

	if s.logg != nil {
		lctx := s.logg.WithVideoID(ctx, entry.ID)
		lctx = s.logg.WithBlobKey(lctx, blobKey)
		s.logg.Info(lctx, "media ingested")
	}
	return &entry, nil
}

// reclaim deletes blobs committed before a later pipeline step failed.
func (s *service) reclaim(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blob.ErrNotFound) {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithBlobKey(ctx, key), "failed to reclaim blob after ingest failure")
			}
		}
	}
}

func streamRef(key string) string {
	return "/api/stream/" + key
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// mediaExtension keeps the original extension for content-type inference;
// anything suspicious is dropped so the generated key stays opaque.
func mediaExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func mediaContentType(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "video/mp4"
}

func thumbnailExtension(subtype string) string {
	if subtype == "jpeg" {
		return "jpg"
	}
	for _, r := range subtype {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "jpg"
		}
	}
	return subtype
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
