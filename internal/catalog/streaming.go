package catalog

// streaming.go cleans up bytes before they reach the line scanner.
//
// Catalog files are often exported from spreadsheet tools, which add a
// UTF-8 byte order mark and occasionally write stray Latin-1 bytes. Neither
// should change how a line parses:
//
//   - NewCleanReader drops a leading BOM (0xEF 0xBB 0xBF)
//   - sanitizeLine replaces invalid UTF-8 bytes with '?'

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewCleanReader wraps r and skips a UTF-8 BOM at the start of the stream.
// A partial BOM is left in place.
func NewCleanReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// sanitizeLine replaces each invalid UTF-8 byte with '?'. ASCII lines are
// returned untouched without allocating.
func sanitizeLine(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte('?')
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
