package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestSession_StartsUnloaded(t *testing.T) {
	s := New()

	if s.State() != Unloaded {
		t.Fatalf("State() = %v, want unloaded", s.State())
	}
	if _, err := s.List(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("List() error = %v, want ErrNotLoaded", err)
	}
	if _, _, err := s.Lookup("CSCI100"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Lookup() error = %v, want ErrNotLoaded", err)
	}
}

func TestSession_DoesNotCallLoaderForQueries(t *testing.T) {
	calls := 0
	s := New(WithLoader(func(string) (*catalog.Catalog, error) {
		calls++
		return nil, errors.New("should not be called")
	}))

	s.List()
	s.Lookup("CSCI100")
	if calls != 0 {
		t.Errorf("loader called %d times, want 0", calls)
	}
}

func TestSession_LoadThenQuery(t *testing.T) {
	s := New()
	path := writeFile(t, "courses.csv", "CSCI100,  Intro to CS ,CSCI101\ncsci101,Programming Basics\n")

	cat, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if s.State() != Loaded || s.Path() != path {
		t.Errorf("State() = %v, Path() = %q", s.State(), s.Path())
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "CSCI100" {
		t.Errorf("List() = %v", entries)
	}

	c, ok, err := s.Lookup(" csci100 ")
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v, %v", c, ok, err)
	}
	if len(c.Prerequisites) != 1 || c.Prerequisites[0] != "CSCI101" {
		t.Errorf("Prerequisites = %v", c.Prerequisites)
	}

	if _, ok, err := s.Lookup("CSCI999"); ok || err != nil {
		t.Errorf("Lookup(miss) = %v, %v, want false, nil", ok, err)
	}
}

func TestSession_FailedReloadClearsCatalog(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.csv") },
			wantErr: catalog.ErrOpen,
		},
		{
			name:    "no valid records",
			path:    func(t *testing.T) string { return writeFile(t, "empty.csv", "just-one-field\n\n") },
			wantErr: catalog.ErrEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if _, err := s.Load(context.Background(), writeFile(t, "good.csv", "CSCI100,Intro\n")); err != nil {
				t.Fatalf("first Load() error = %v", err)
			}

			_, err := s.Load(context.Background(), tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("second Load() error = %v, want %v", err, tt.wantErr)
			}
			if s.State() != Unloaded {
				t.Errorf("State() = %v, want unloaded after failed reload", s.State())
			}
			if s.Path() != "" {
				t.Errorf("Path() = %q, want empty", s.Path())
			}
			if _, err := s.List(); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("List() error = %v, want ErrNotLoaded", err)
			}
		})
	}
}

func TestSession_ReloadReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Load(ctx, writeFile(t, "a.csv", "CSCI100,Intro\nMATH201,Discrete Mathematics\n")); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if _, err := s.Load(ctx, writeFile(t, "b.csv", "CSCI200,Data Structures\n")); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	if _, ok, _ := s.Lookup("MATH201"); ok {
		t.Error("MATH201 should be gone after reload")
	}
	if _, ok, _ := s.Lookup("CSCI200"); !ok {
		t.Error("CSCI200 should be present after reload")
	}
}

func TestSession_RecordsEveryLoad(t *testing.T) {
	rec := audit.NewMemoryRecorder(0)
	s := New(WithRecorder(rec))
	ctx := context.Background()

	s.Load(ctx, writeFile(t, "good.csv", "CSCI100,Intro\nbad\n"))
	s.Load(ctx, filepath.Join(t.TempDir(), "missing.csv"))
	s.Load(ctx, writeFile(t, "empty.csv", ""))

	events := rec.Events()
	if len(events) != 3 {
		t.Fatalf("recorded %d events, want 3", len(events))
	}

	want := []audit.Outcome{audit.OutcomeLoaded, audit.OutcomeOpenError, audit.OutcomeEmpty}
	for i, ev := range events {
		if ev.Outcome != want[i] {
			t.Errorf("event %d outcome = %q, want %q", i, ev.Outcome, want[i])
		}
	}
	if events[0].Records != 1 || events[0].Skipped != 1 {
		t.Errorf("event 0 counts = %+v", events[0])
	}
	if events[0].ID == events[1].ID {
		t.Error("each load should get its own ID")
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, audit.LoadEvent) error {
	return errors.New("database unavailable")
}

func TestSession_RecorderFailureDoesNotFailLoad(t *testing.T) {
	s := New(WithRecorder(failingRecorder{}))

	if _, err := s.Load(context.Background(), writeFile(t, "good.csv", "CSCI100,Intro\n")); err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if s.State() != Loaded {
		t.Errorf("State() = %v, want loaded", s.State())
	}
}
