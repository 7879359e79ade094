package web

// errors.go turns handler errors into responses.
//
//  1. Handler calls respondError(w, r, err, status)
//  2. err is mapped with catalog.MapError to a coded user message
//  3. The technical error is logged with the request ID
//  4. The message is written as JSON for /api/* and JSON clients,
//     otherwise as an HTML page

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/courseplanner/internal/catalog"
	weblog "github.com/JonMunkholm/courseplanner/internal/web/middleware"
	"github.com/JonMunkholm/courseplanner/internal/web/templates"
	"github.com/a-h/templ"
)

// ErrorResponse is the JSON body for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := catalog.MapError(err)
	if errors.Is(err, errRouteNotFound) {
		userMsg = catalog.UserMessage{Message: "Page not found", Code: "HTTP404"}
	}

	logger := weblog.FromRequest(r)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", "path", r.URL.Path, "status", statusCode, "error", err, "code", userMsg.Code)
	} else {
		logger.Debug("request error", "path", r.URL.Path, "status", statusCode, "error", err, "code", userMsg.Code)
	}

	if wantsJSON(r) {
		writeJSON(w, r, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}

	s.renderHTML(w, r, statusCode, templates.ErrorPage(userMsg.Message, userMsg.Action, userMsg.Code))
}

// renderHTML writes a templ component with the given status.
func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		weblog.FromRequest(r).Error("render error", "path", r.URL.Path, "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
