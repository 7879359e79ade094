package catalog

import (
	"slices"
	"strings"
)

// Course is a single catalog record.
type Course struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Prerequisites []string `json:"prerequisites"`
}

// Entry is one row of the course listing.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Stats describes what happened while a catalog was parsed.
type Stats struct {
	Lines      int // Lines read, including blank and malformed ones
	Records    int // Distinct courses in the catalog
	Skipped    int // Lines with fewer than two non-empty fields
	Duplicates int // Records that replaced an earlier record with the same ID
}

// Catalog is an immutable set of courses keyed by normalized identifier.
// It is safe for concurrent readers once returned by Parse or Load.
type Catalog struct {
	courses map[string]Course
	keys    []string // sorted byte-wise, built once
	stats   Stats
}

// Normalize trims surrounding whitespace and uppercases s. It is applied to
// identifiers and prerequisites at load time and to user input at lookup.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Stats returns the parse statistics for this catalog.
func (c *Catalog) Stats() Stats {
	return c.stats
}

// List returns every course as an (ID, Title) pair in ascending ID order.
// Ordering is by byte value, not locale collation.
func (c *Catalog) List() []Entry {
	entries := make([]Entry, len(c.keys))
	for i, k := range c.keys {
		entries[i] = Entry{ID: k, Title: c.courses[k].Title}
	}
	return entries
}

// Lookup finds a course by a raw, user-supplied identifier. The input is
// normalized first, so "csci400", " CSCI400 " and "CSCI400" are equivalent.
func (c *Catalog) Lookup(raw string) (Course, bool) {
	course, ok := c.courses[Normalize(raw)]
	if !ok {
		return Course{}, false
	}
	course.Prerequisites = slices.Clone(course.Prerequisites)
	return course, true
}
