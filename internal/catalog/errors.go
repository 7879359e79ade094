package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen matches any *OpenError.
	ErrOpen = errors.New("cannot open file")

	// ErrEmpty matches any *EmptyError.
	ErrEmpty = errors.New("no valid course records found")

	// ErrNotFound is returned by callers that need to turn a lookup miss
	// into an error value (HTTP handlers, the show command).
	ErrNotFound = errors.New("course not found")
)

// OpenError reports a source that could not be opened or read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// EmptyError reports a source that was read in full but produced no records.
type EmptyError struct {
	Path  string
	Stats Stats
}

func (e *EmptyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("no valid course records found (%d lines read)", e.Stats.Lines)
	}
	return fmt.Sprintf("no valid course records found in %s (%d lines read)", e.Path, e.Stats.Lines)
}

func (e *EmptyError) Is(target error) bool { return target == ErrEmpty }
