package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to the shell's output, so piping or redirecting output
// yields plain text with no escape sequences.
type styles struct {
	banner lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		banner: r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		err:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
