package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

var errRouteNotFound = errors.New("route not found")

// CourseResponse is the JSON shape of one course.
type CourseResponse struct {
	catalog.Course
	PrerequisitesText string `json:"prerequisitesText"`
}

// CourseListResponse is the JSON shape of the course listing.
type CourseListResponse struct {
	Source  string          `json:"source,omitempty"`
	Count   int             `json:"count"`
	Courses []catalog.Entry `json:"courses"`
}

// courseParam returns the decoded {courseID}. chi matches on RawPath when
// the request has one, which leaves escapes such as %2F in the parameter.
func courseParam(r *http.Request) string {
	raw := chi.URLParam(r, "courseID")
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// handleIndex renders the full listing as HTML.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, r, http.StatusOK, templates.CourseList(s.source, s.catalog.List()))
}

// handleCoursePage renders one course as HTML.
func (s *Server) handleCoursePage(w http.ResponseWriter, r *http.Request) {
	raw := courseParam(r)

	c, ok := s.catalog.Lookup(raw)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%s: %w", catalog.Normalize(raw), catalog.ErrNotFound), http.StatusNotFound)
		return
	}

	s.renderHTML(w, r, http.StatusOK, templates.CourseDetail(c))
}

// handleListCourses returns the sorted listing as JSON.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	entries := s.catalog.List()
	writeJSON(w, r, http.StatusOK, CourseListResponse{
		Source:  s.source,
		Count:   len(entries),
		Courses: entries,
	})
}

// handleGetCourse returns one course as JSON. Identifiers are matched
// case-insensitively.
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	raw := courseParam(r)

	c, ok := s.catalog.Lookup(raw)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%s: %w", catalog.Normalize(raw), catalog.ErrNotFound), http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, CourseResponse{
		Course:            c,
		PrerequisitesText: catalog.FormatPrerequisites(c),
	})
}

// handleListLoads returns recent load events, newest last.
func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	events := []audit.LoadEvent{}
	if s.history != nil {
		events = s.history.Events()
	}
	writeJSON(w, r, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"courses": s.catalog.Len(),
	})
}
