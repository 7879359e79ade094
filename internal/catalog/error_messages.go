package catalog

// error_messages.go maps errors to user-facing messages with a stable code
// that can be quoted in bug reports.
//
//	CAT001 - Cannot open file       (ErrOpen)
//	CAT002 - No valid records       (ErrEmpty)
//	CAT003 - Course not found       (ErrNotFound)
//	SES001 - Catalog not loaded     ("not loaded")
//	REQ001 - Request cancelled      ("context canceled")
//	REQ002 - Request timed out      ("context deadline exceeded")
//	ERR000 - Unknown error          (fallback)
//
// Sentinel matches are tried first, then case-insensitive substring
// patterns. The first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorTarget struct {
	target error
	msg    UserMessage
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorTargets = []errorTarget{
	{
		target: ErrOpen,
		msg: UserMessage{
			Message: "Cannot open file",
			Action:  "Check the file name and that the file is readable",
			Code:    "CAT001",
		},
	},
	{
		target: ErrEmpty,
		msg: UserMessage{
			Message: "No valid course records were found",
			Action:  "Each line needs at least a course number and a title separated by a comma",
			Code:    "CAT002",
		},
	},
	{
		target: ErrNotFound,
		msg: UserMessage{
			Message: "Course not found",
			Action:  "Check the course number; use the course list to see what is available",
			Code:    "CAT003",
		},
	},
}

var errorPatterns = []errorPattern{
	{
		pattern: "not loaded",
		msg: UserMessage{
			Message: "Course data has not been loaded",
			Action:  "Load course data first",
			Code:    "SES001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000). The original
// error is only in the logs.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message. A nil error maps
// to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, et := range errorTargets {
		if errors.Is(err, et.target) {
			return et.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
