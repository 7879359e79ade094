package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"open error", &OpenError{Path: "x.csv", Err: errors.New("no such file")}, "CAT001"},
		{"wrapped open error", fmt.Errorf("load: %w", &OpenError{Path: "x.csv"}), "CAT001"},
		{"empty error", &EmptyError{Path: "x.csv"}, "CAT002"},
		{"not found", fmt.Errorf("lookup CSCI999: %w", ErrNotFound), "CAT003"},
		{"not loaded pattern", errors.New("catalog not loaded"), "SES001"},
		{"cancelled", context.Canceled, "REQ001"},
		{"deadline", fmt.Errorf("serve: %w", context.DeadlineExceeded), "REQ002"},
		{"unknown", errors.New("something else"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err).Code; got != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(&EmptyError{Path: "x.csv"})
	if !strings.Contains(got, "(Code: CAT002)") {
		t.Errorf("FormatUserError() = %q, want code CAT002", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
	if !IsUserFacing(ErrNotFound) {
		t.Error("ErrNotFound should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unknown errors should not be user facing")
	}
}
