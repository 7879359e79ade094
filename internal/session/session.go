// Package session owns the catalog for one interactive run.
//
// A Session starts Unloaded. A successful Load moves it to Loaded; a failed
// Load always leaves it Unloaded, even if an earlier catalog was loaded,
// because the previous catalog is dropped before the new file is read.
// List and Lookup refuse to run while Unloaded.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/logging"
	"github.com/google/uuid"
)

// ErrNotLoaded is returned by queries made before a successful load.
var ErrNotLoaded = errors.New("catalog not loaded")

// State is the session's load state.
type State int

const (
	Unloaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// LoaderFunc reads a catalog from a path. catalog.Load is the default.
type LoaderFunc func(path string) (*catalog.Catalog, error)

// Session holds the current catalog and where it came from.
type Session struct {
	cat      *catalog.Catalog
	path     string
	recorder audit.Recorder
	loader   LoaderFunc
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder sends every load attempt to r.
func WithRecorder(r audit.Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLoader replaces catalog.Load.
func WithLoader(fn LoaderFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.loader = fn
		}
	}
}

// New returns an Unloaded session.
func New(opts ...Option) *Session {
	s := &Session{
		recorder: audit.NopRecorder{},
		loader:   catalog.Load,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports whether a catalog is loaded.
func (s *Session) State() State {
	if s.cat == nil {
		return Unloaded
	}
	return Loaded
}

// Path returns the file the current catalog came from, or "" when Unloaded.
func (s *Session) Path() string {
	return s.path
}

// Load replaces the session catalog with the contents of path. The old
// catalog is discarded before reading, so on error the session is Unloaded.
func (s *Session) Load(ctx context.Context, path string) (*catalog.Catalog, error) {
	s.cat = nil
	s.path = ""

	id := uuid.New()
	logger := logging.WithFields(ctx, "load_id", id, "path", path)

	start := time.Now()
	cat, err := s.loader(path)
	elapsed := time.Since(start)

	if recErr := s.recorder.Record(ctx, audit.NewLoadEvent(id, path, cat, err, elapsed)); recErr != nil {
		logger.Warn("failed to record catalog load", "error", recErr)
	}

	if err != nil {
		logger.Info("catalog load failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, err
	}

	stats := cat.Stats()
	logger.Info("catalog loaded",
		"records", stats.Records,
		"lines", stats.Lines,
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates,
		"duration_ms", elapsed.Milliseconds(),
	)

	s.cat = cat
	s.path = path
	return cat, nil
}

// Catalog returns the loaded catalog or ErrNotLoaded.
func (s *Session) Catalog() (*catalog.Catalog, error) {
	if s.cat == nil {
		return nil, ErrNotLoaded
	}
	return s.cat, nil
}

// List returns the sorted course listing or ErrNotLoaded.
func (s *Session) List() ([]catalog.Entry, error) {
	cat, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return cat.List(), nil
}

// Lookup finds a course by raw identifier. A miss is (Course{}, false, nil);
// only an Unloaded session produces an error.
func (s *Session) Lookup(raw string) (catalog.Course, bool, error) {
	cat, err := s.Catalog()
	if err != nil {
		return catalog.Course{}, false, err
	}
	c, ok := cat.Lookup(raw)
	return c, ok, nil
}
