package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/videxhq/videx-backend/pkg/logger"
)

// ErrNotFound is returned when no entry matches the requested id.
var ErrNotFound = errors.New("catalog: entry not found")

// Store holds the catalog document in memory and persists it to a single
// JSON file on every mutation. All access is serialized behind a mutex, so
// two in-flight mutations can never clobber each other's write.
type Store struct {
	path string
	logg *logger.Logger

	mu  sync.Mutex
	doc Document
}

// NewStore loads the catalog from path. A missing or unreadable file is
// recovered as an empty catalog, never a fatal error.
func NewStore(path string, logg *logger.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path required")
	}

	s := &Store{path: path, logg: logg}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("reading catalog: %w", err)
	default:
		if err := json.Unmarshal(raw, &s.doc); err != nil {
			if logg != nil {
				logg.Warn(context.Background(), "catalog file corrupt, starting empty")
			}
			s.doc = Document{}
		}
	}
	s.doc.normalize()
	return s, nil
}

// List returns a copy of the current document.
func (s *Store) List() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Document{
		Videos: append(make([]Entry, 0, len(s.doc.Videos)), s.doc.Videos...),
		Shorts: append(make([]Entry, 0, len(s.doc.Shorts)), s.doc.Shorts...),
	}
}

// Insert prepends the entry to the list selected by its Kind and persists.
// Entry ids must be unique across both lists.
func (s *Store) Insert(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(e.ID) != nil {
		return fmt.Errorf("catalog: duplicate entry id %s", e.ID)
	}

	if e.Kind == KindShort {
		s.doc.Shorts = append([]Entry{e}, s.doc.Shorts...)
	} else {
		s.doc.Videos = append([]Entry{e}, s.doc.Videos...)
	}
	if err := s.persistLocked(); err != nil {
		// Roll the in-memory document back so a later retry starts clean.
		if e.Kind == KindShort {
			s.doc.Shorts = s.doc.Shorts[1:]
		} else {
			s.doc.Videos = s.doc.Videos[1:]
		}
		return err
	}
	return nil
}

// IncrementLikes bumps the like counter for the entry and persists,
// returning the new value.
func (s *Store) IncrementLikes(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return 0, ErrNotFound
	}
	e.Likes++
	if err := s.persistLocked(); err != nil {
		e.Likes--
		return 0, err
	}
	return e.Likes, nil
}

// IncrementViews bumps the view counter, stored as a string. A counter
// that fails to parse restarts from zero.
func (s *Store) IncrementViews(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return "", ErrNotFound
	}
	prev := e.Views
	n, err := strconv.Atoi(e.Views)
	if err != nil {
		n = 0
	}
	e.Views = strconv.Itoa(n + 1)
	if err := s.persistLocked(); err != nil {
		e.Views = prev
		return "", err
	}
	return e.Views, nil
}

// Remove deletes the entry from whichever list contains it, videos first,
// and returns the removed entry so callers can reclaim its blobs.
func (s *Store) Remove(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.doc.Videos {
		if e.ID == id {
			s.doc.Videos = append(s.doc.Videos[:i:i], s.doc.Videos[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.doc.Videos = insertAt(s.doc.Videos, i, e)
				return Entry{}, err
			}
			return e, nil
		}
	}
	for i, e := range s.doc.Shorts {
		if e.ID == id {
			s.doc.Shorts = append(s.doc.Shorts[:i:i], s.doc.Shorts[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.doc.Shorts = insertAt(s.doc.Shorts, i, e)
				return Entry{}, err
			}
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *Store) findLocked(id string) *Entry {
	for i := range s.doc.Videos {
		if s.doc.Videos[i].ID == id {
			return &s.doc.Videos[i]
		}
	}
	for i := range s.doc.Shorts {
		if s.doc.Shorts[i].ID == id {
			return &s.doc.Shorts[i]
		}
	}
	return nil
}

func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

func insertAt(entries []Entry, i int, e Entry) []Entry {
	out := append(entries[:i:i], e)
	return append(out, entries[i:]...)
}
