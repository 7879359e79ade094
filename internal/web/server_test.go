package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/config"
	"github.com/google/uuid"
)

const testCatalog = `CSCI100,Introduction to Computer Science
CSCI101,Introduction to Programming in C++,CSCI100
CSCI300,Introduction to Algorithms,CSCI200,MATH201
`

func newTestServer(t *testing.T, history History) *Server {
	t.Helper()
	return newServerFor(t, testCatalog, history)
}

func newServerFor(t *testing.T, content string, history History) *Server {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return NewServer(cat, "courses.csv", history, config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		RequestTimeout: 5 * time.Second,
	})
}

func do(t *testing.T, s *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	i100 := strings.Index(body, "CSCI100")
	i300 := strings.Index(body, "CSCI300")
	if i100 < 0 || i300 < 0 || i100 > i300 {
		t.Errorf("listing not sorted or incomplete:\n%s", body)
	}
}

func TestCoursePage(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"exact id", "/courses/CSCI300", http.StatusOK, "CSCI300, Introduction to Algorithms"},
		{"lowercase id", "/courses/csci101", http.StatusOK, "CSCI101, Introduction to Programming in C++"},
		{"no prerequisites", "/courses/CSCI100", http.StatusOK, "Prerequisites: None"},
		{"missing", "/courses/MATH999", http.StatusNotFound, "Code: CAT003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestCourseIDWithSlash(t *testing.T) {
	s := newServerFor(t, "CS/MATH101,Discrete Structures\nCSCI200,Data Structures,cs/math101\n", nil)

	index := do(t, s, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(index, `href="/courses/CS%2FMATH101"`) {
		t.Fatalf("index should link the escaped id:\n%s", index)
	}

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"html page", "/courses/CS%2FMATH101", "CS/MATH101, Discrete Structures"},
		{"html page lowercase", "/courses/cs%2fmath101", "CS/MATH101, Discrete Structures"},
		{"prerequisite link", "/courses/CSCI200", `href="/courses/CS%2FMATH101"`},
		{"api", "/api/courses/cs%2Fmath101", `"id":"CS/MATH101"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAPIListCourses(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/courses", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp CourseListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 || len(resp.Courses) != 3 {
		t.Fatalf("count = %d, courses = %d, want 3", resp.Count, len(resp.Courses))
	}
	if resp.Courses[0].ID != "CSCI100" || resp.Courses[2].ID != "CSCI300" {
		t.Errorf("courses not sorted: %+v", resp.Courses)
	}
	if resp.Source != "courses.csv" {
		t.Errorf("source = %q", resp.Source)
	}
}

func TestAPIGetCourse(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("found case-insensitively", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/courses/%20csci300%20", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp CourseResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != "CSCI300" {
			t.Errorf("ID = %q", resp.ID)
		}
		if resp.PrerequisitesText != "CSCI200, MATH201" {
			t.Errorf("PrerequisitesText = %q", resp.PrerequisitesText)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/courses/NOPE1", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Code != "CAT003" {
			t.Errorf("code = %q, want CAT003", resp.Code)
		}
	})
}

func TestAPIListLoads(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := do(t, s, http.MethodGet, "/api/loads", nil)
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("body = %q, want []", rec.Body.String())
		}
	})

	t.Run("with history", func(t *testing.T) {
		mem := audit.NewMemoryRecorder(10)
		id := uuid.New()
		if err := mem.Record(context.Background(), audit.LoadEvent{ID: id, Path: "courses.csv", Outcome: audit.OutcomeLoaded, Records: 3}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		s := newTestServer(t, mem)
		rec := do(t, s, http.MethodGet, "/api/loads", nil)

		var events []audit.LoadEvent
		if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(events) != 1 || events[0].ID != id || events[0].Outcome != audit.OutcomeLoaded {
			t.Errorf("events = %+v", events)
		}
	})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/healthz", nil)

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" || resp["courses"] != float64(3) {
		t.Errorf("health = %v", resp)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("html", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/nowhere", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "HTTP404") {
			t.Errorf("body missing code:\n%s", rec.Body.String())
		}
	})

	t.Run("json via accept", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/nowhere", map[string]string{"Accept": "application/json"})
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	})
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/healthz", nil)

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy", "Referrer-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", rec.Header().Get("X-Content-Type-Options"))
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	s := newTestServer(t, nil)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
