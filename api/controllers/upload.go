package controllers

import (
	"errors"
	"net/http"

	"github.com/videxhq/videx-backend/api/responses"
	"github.com/videxhq/videx-backend/api/validators"
	"github.com/videxhq/videx-backend/internal/catalog"
	"github.com/videxhq/videx-backend/internal/ingest"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
)

// multipartMemory is the in-memory threshold for multipart parsing; file
// parts above it spool to disk, which doubles as the ingest staging area.
const multipartMemory = 32 << 20

type uploadForm struct {
	Title         string `form:"title" validate:"max=300"`
	Description   string `form:"description" validate:"max=5000"`
	Channel       string `form:"channel" validate:"max=200"`
	ChannelAvatar string `form:"channelAvatar" validate:"max=500"`
	Duration      string `form:"duration" validate:"max=20"`
	Tags          string `form:"tags" validate:"max=1000"`
	// Kind is not validated against a closed set; anything but "short"
	// falls back to video, like the rest of the catalog defaults.
	Kind string `form:"type" validate:"max=20"`
}

// Upload ingests one media item from a multipart form. The body is capped
// at maxBytes before parsing, and the multipart spool is removed on every
// exit path.
func Upload(svc ingest.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ingest service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeTooLarge, "upload exceeds size limit"))
				return
			}
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				if err := r.MultipartForm.RemoveAll(); err != nil && logg != nil {
					logg.Warn(r.Context(), "failed to remove upload staging files")
				}
			}
		}()

		file, header, err := r.FormFile("video")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "no file uploaded"))
			return
		}
		defer func() { _ = file.Close() }()

		form := uploadForm{
			Title:         r.FormValue("title"),
			Description:   r.FormValue("description"),
			Channel:       r.FormValue("channel"),
			ChannelAvatar: r.FormValue("channelAvatar"),
			Duration:      r.FormValue("duration"),
			Tags:          r.FormValue("tags"),
			Kind:          r.FormValue("type"),
		}
		if err := validators.ValidateStruct(form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Ingest(r.Context(), ingest.Input{
			Media:         file,
			Filename:      header.Filename,
			Title:         form.Title,
			Description:   form.Description,
			Channel:       form.Channel,
			ChannelAvatar: form.ChannelAvatar,
			Duration:      form.Duration,
			Tags:          form.Tags,
			Kind:          form.Kind,
			Thumbnail:     r.FormValue("thumbnail"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, uploadResponse{Success: true, Video: entry})
	}
}

type uploadResponse struct {
	Success bool           `json:"success"`
	Video   *catalog.Entry `json:"video"`
}
