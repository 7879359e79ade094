package catalog

import (
	"fmt"
	"io"
	"strings"
)

// NoPrerequisites is shown in place of an empty prerequisite list.
const NoPrerequisites = "None"

// FormatPrerequisites joins a course's prerequisites in stored order, or
// returns NoPrerequisites when there are none.
func FormatPrerequisites(c Course) string {
	if len(c.Prerequisites) == 0 {
		return NoPrerequisites
	}
	return strings.Join(c.Prerequisites, ", ")
}

// WriteList prints the full listing, one "ID, Title" line per course.
func WriteList(w io.Writer, cat *Catalog) error {
	var b strings.Builder
	b.WriteString("Here is a sample schedule:\n\n")
	for _, e := range cat.List() {
		fmt.Fprintf(&b, "%s, %s\n", e.ID, e.Title)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCourse prints a course's title line followed by its prerequisites.
func WriteCourse(w io.Writer, c Course) error {
	_, err := fmt.Fprintf(w, "%s, %s\nPrerequisites: %s\n\n", c.ID, c.Title, FormatPrerequisites(c))
	return err
}

// WriteNotFound prints the lookup-miss message for a raw identifier.
func WriteNotFound(w io.Writer, raw string) error {
	_, err := fmt.Fprintf(w, "Course %s not found.\n\n", Normalize(raw))
	return err
}
