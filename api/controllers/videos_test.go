package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/videxhq/videx-backend/internal/catalog"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
	"github.com/videxhq/videx-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubCatalogService struct {
	doc       catalog.Document
	likes     int
	views     string
	err       error
	deletedID string
}

func (s *stubCatalogService) List(ctx context.Context) catalog.Document { return s.doc }

func (s *stubCatalogService) Like(ctx context.Context, id string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.likes, nil
}

func (s *stubCatalogService) View(ctx context.Context, id string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.views, nil
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deletedID = id
	return nil
}

func requestWithID(method, target, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestVideoList(t *testing.T) {
	logg := testLogger()
	stub := &stubCatalogService{doc: catalog.Document{
		Videos: []catalog.Entry{{ID: "v1", Title: "First"}},
		Shorts: []catalog.Entry{},
	}}

	rec := httptest.NewRecorder()
	VideoList(stub, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/videos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Videos []catalog.Entry `json:"videos"`
		Shorts []catalog.Entry `json:"shorts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Videos) != 1 || body.Videos[0].ID != "v1" {
		t.Fatalf("unexpected videos %+v", body.Videos)
	}
	if body.Shorts == nil || len(body.Shorts) != 0 {
		t.Fatalf("shorts should be an empty list, got %v", body.Shorts)
	}
}

func TestVideoLike(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		VideoLike(&stubCatalogService{likes: 3}, logg).
			ServeHTTP(rec, requestWithID(http.MethodPost, "/api/videos/v1/like", "v1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "{\"likes\":3}\n" {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "video not found")}
		rec := httptest.NewRecorder()
		VideoLike(stub, logg).ServeHTTP(rec, requestWithID(http.MethodPost, "/api/videos/x/like", "x"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		VideoLike(&stubCatalogService{}, logg).
			ServeHTTP(rec, requestWithID(http.MethodPost, "/api/videos//like", ""))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVideoView(t *testing.T) {
	logg := testLogger()

	rec := httptest.NewRecorder()
	VideoView(&stubCatalogService{views: "8"}, logg).
		ServeHTTP(rec, requestWithID(http.MethodPost, "/api/videos/v1/view", "v1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"views\":\"8\"}\n" {
		t.Fatalf("views must stay a string counter, got %q", rec.Body.String())
	}
}

func TestVideoDelete(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := httptest.NewRecorder()
		VideoDelete(stub, logg).ServeHTTP(rec, requestWithID(http.MethodDelete, "/api/videos/v1", "v1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.deletedID != "v1" {
			t.Fatalf("expected delete to reach the service, got %q", stub.deletedID)
		}
		if rec.Body.String() != "{\"success\":true}\n" {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "video not found")}
		rec := httptest.NewRecorder()
		VideoDelete(stub, logg).ServeHTTP(rec, requestWithID(http.MethodDelete, "/api/videos/x", "x"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
