package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Delimiter separates fields within a line.
const Delimiter = ","

// DefaultMaxLineSize is the longest line accepted by a zero Loader.
const DefaultMaxLineSize = 1024 * 1024

// Loader reads catalogs. The zero value is ready to use.
type Loader struct {
	// MaxLineSize is the longest accepted line in bytes. Longer lines fail
	// the load with an *OpenError rather than being silently truncated.
	// Zero or less means DefaultMaxLineSize.
	MaxLineSize int
}

// Load opens the file at path and parses it into a new catalog using a
// zero Loader. The file is only read, never modified.
func Load(path string) (*Catalog, error) {
	return Loader{}.Load(path)
}

// Parse reads a catalog from r using a zero Loader. See the package
// documentation for the line format.
func Parse(r io.Reader) (*Catalog, error) {
	return Loader{}.Parse(r)
}

// Load opens the file at path and parses it into a new catalog.
func (l Loader) Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	return l.parse(f, path)
}

// Parse reads a catalog from r.
func (l Loader) Parse(r io.Reader) (*Catalog, error) {
	return l.parse(r, "")
}

func (l Loader) maxLineSize() int {
	if l.MaxLineSize <= 0 {
		return DefaultMaxLineSize
	}
	return l.MaxLineSize
}

func (l Loader) parse(r io.Reader, path string) (*Catalog, error) {
	cat := &Catalog{courses: make(map[string]Course)}
	maxLine := l.maxLineSize()

	sc := bufio.NewScanner(NewCleanReader(r))
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	for sc.Scan() {
		cat.stats.Lines++

		course, ok := ParseLine(sanitizeLine(sc.Text()))
		if !ok {
			cat.stats.Skipped++
			continue
		}

		if _, exists := cat.courses[course.ID]; exists {
			cat.stats.Duplicates++
		}
		cat.courses[course.ID] = course
	}

	if err := sc.Err(); err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("read line %d: %w", cat.stats.Lines+1, err)}
	}

	if len(cat.courses) == 0 {
		return nil, &EmptyError{Path: path, Stats: cat.stats}
	}

	cat.keys = make([]string, 0, len(cat.courses))
	for k := range cat.courses {
		cat.keys = append(cat.keys, k)
	}
	slices.Sort(cat.keys)
	cat.stats.Records = len(cat.courses)

	return cat, nil
}

// ParseLine interprets a single line. It returns false when the line has
// fewer than two non-empty fields.
func ParseLine(line string) (Course, bool) {
	fields := splitFields(line)
	if len(fields) < 2 {
		return Course{}, false
	}

	course := Course{
		ID:            strings.ToUpper(fields[0]),
		Title:         fields[1],
		Prerequisites: make([]string, 0, len(fields)-2),
	}
	for _, f := range fields[2:] {
		course.Prerequisites = append(course.Prerequisites, strings.ToUpper(f))
	}

	return course, true
}

// splitFields splits on Delimiter, trims every field and drops empty ones.
func splitFields(line string) []string {
	parts := strings.Split(line, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
