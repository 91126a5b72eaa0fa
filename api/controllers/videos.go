package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videxhq/videx-backend/api/responses"
	"github.com/videxhq/videx-backend/internal/catalog"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
)

// VideoList returns the whole catalog: {videos:[...], shorts:[...]}.
func VideoList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteJSON(w, http.StatusOK, svc.List(r.Context()))
	}
}

// VideoLike increments the like counter and returns {likes:N}.
func VideoLike(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := entryID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		likes, err := svc.Like(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]int{"likes": likes})
	}
}

// VideoView increments the view counter and returns {views:"N"}.
func VideoView(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := entryID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views, err := svc.View(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]string{"views": views})
	}
}

// VideoDelete removes the entry and its blobs, returning {success:true}.
func VideoDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := entryID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func entryID(r *http.Request, svc catalog.Service) (string, error) {
	if svc == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "video id required")
	}
	return id, nil
}
