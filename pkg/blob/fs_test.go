package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func newTestFS(t *testing.T) *FSStore {
	t.Helper()
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return store
}

func TestFSPutGetRoundTrip(t *testing.T) {
	store := newTestFS(t)
	ctx := context.Background()
	payload := []byte("0123456789")

	if err := store.Put(ctx, "clip.mp4", bytes.NewReader(payload), "video/mp4"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	obj, err := store.Get(ctx, "clip.mp4", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer obj.Body.Close()

	if obj.Size != int64(len(payload)) {
		t.Fatalf("expected size %d got %d", len(payload), obj.Size)
	}
	got, err := io.ReadAll(obj.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %q", got)
	}
	if obj.ContentType != "video/mp4" {
		t.Fatalf("unexpected content type %q", obj.ContentType)
	}
}

func TestFSGetRangeWindow(t *testing.T) {
	store := newTestFS(t)
	ctx := context.Background()
	payload := []byte("0123456789")

	if err := store.Put(ctx, "clip.mp4", bytes.NewReader(payload), ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Every valid window yields exactly the requested bytes.
	for start := int64(0); start < int64(len(payload)); start++ {
		for end := start; end < int64(len(payload)); end++ {
			obj, err := store.Get(ctx, "clip.mp4", &ByteRange{Start: start, End: end})
			if err != nil {
				t.Fatalf("Get(%d-%d): %v", start, end, err)
			}
			got, err := io.ReadAll(obj.Body)
			obj.Body.Close()
			if err != nil {
				t.Fatalf("reading window %d-%d: %v", start, end, err)
			}
			if !bytes.Equal(got, payload[start:end+1]) {
				t.Fatalf("window %d-%d mismatch: %q", start, end, got)
			}
			if obj.Size != int64(len(payload)) {
				t.Fatalf("ranged get must report total size, got %d", obj.Size)
			}
		}
	}

	// Full range equals the unrestricted get.
	obj, err := store.Get(ctx, "clip.mp4", &ByteRange{Start: 0, End: int64(len(payload)) - 1})
	if err != nil {
		t.Fatalf("full range get: %v", err)
	}
	got, _ := io.ReadAll(obj.Body)
	obj.Body.Close()
	if !bytes.Equal(got, payload) {
		t.Fatalf("full range should equal whole object, got %q", got)
	}
}

type failingReader struct {
	data []byte
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		n := copy(p, f.data)
		return n, nil
	}
	return 0, errors.New("stream interrupted")
}

func TestFSPutFailureNotObservable(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	ctx := context.Background()

	err = store.Put(ctx, "broken.mp4", &failingReader{data: []byte("partial")}, "")
	if err == nil {
		t.Fatal("expected Put to fail")
	}

	if _, err := store.Get(ctx, "broken.mp4", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("partial write must not be observable, got %v", err)
	}

	// No temp leftovers either.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".put-") {
			t.Fatalf("temp file %s left behind", e.Name())
		}
	}
}

func TestFSStatExistsDelete(t *testing.T) {
	store := newTestFS(t)
	ctx := context.Background()

	if ok, err := store.Exists(ctx, "missing.mp4"); err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
	if _, err := store.Stat(ctx, "missing.mp4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Stat(missing) = %v", err)
	}
	if err := store.Delete(ctx, "missing.mp4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) = %v", err)
	}

	if err := store.Put(ctx, "a.mp4", strings.NewReader("abc"), ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if size, err := store.Stat(ctx, "a.mp4"); err != nil || size != 3 {
		t.Fatalf("Stat = %d, %v", size, err)
	}
	if ok, err := store.Exists(ctx, "a.mp4"); err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if err := store.Delete(ctx, "a.mp4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "a.mp4", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted object must be unreachable, got %v", err)
	}
}

func TestFSRejectsForgedKeys(t *testing.T) {
	store := newTestFS(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		if err := store.Put(ctx, key, strings.NewReader("x"), ""); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
		if _, err := store.Get(ctx, key, nil); err == nil {
			t.Fatalf("get with key %q should be rejected", key)
		}
	}
}
