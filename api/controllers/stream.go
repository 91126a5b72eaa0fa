package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/videxhq/videx-backend/api/responses"
	"github.com/videxhq/videx-backend/internal/stream"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
	"github.com/videxhq/videx-backend/pkg/metrics"
)

const fallbackContentType = "video/mp4"

// Stream serves a blob with byte-range support: 200 for full reads, 206
// for windows, 416 with Content-Range: bytes */<size> for bad ranges.
func Stream(svc stream.Service, m *metrics.MediaMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stream service unavailable"))
			return
		}

		key := chi.URLParam(r, "key")
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "media key required"))
			return
		}

		win, err := svc.Open(r.Context(), key, r.Header.Get("Range"))
		if err != nil {
			m.IncFailure("stream")
			if size, ok := stream.SizeFromRangeError(err); ok {
				w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer func() { _ = win.Body.Close() }()

		contentType := win.ContentType
		if contentType == "" {
			contentType = fallbackContentType
		}
		w.Header().Set("Content-Type", contentType)
		if win.Range != nil {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", win.Range.Start, win.Range.End, win.Size))
			w.Header().Set("Accept-Ranges", "bytes")
			w.Header().Set("Content-Length", strconv.FormatInt(win.Range.Length(), 10))
			w.WriteHeader(http.StatusPartialContent)
		} else {
			w.Header().Set("Content-Length", strconv.FormatInt(win.Size, 10))
			w.WriteHeader(http.StatusOK)
		}

		n, copyErr := io.Copy(w, win.Body)
		m.AddBytes("stream", n)
		if copyErr != nil {
			// Headers are gone; a dropped client mid-stream is normal.
			m.IncFailure("stream")
			if logg != nil {
				logg.Warn(logg.WithBlobKey(r.Context(), key), "media stream interrupted")
			}
			return
		}
		m.IncSuccess("stream")
	}
}
