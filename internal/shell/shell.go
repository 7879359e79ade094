// Package shell runs the numbered-menu course planner on a line-oriented
// terminal.
//
// Every prompt reads one whole line, so junk after a menu number or a
// non-numeric answer never leaks into the next prompt.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/logging"
	"github.com/JonMunkholm/courseplanner/internal/session"
)

// Menu choices.
const (
	ChoiceLoad = 1
	ChoiceList = 2
	ChoiceShow = 3
	ChoiceExit = 9
)

const menuText = `
1. Load Data Structure.
2. Print Course List.
3. Print Course.
9. Exit

`

// Shell is one interactive run bound to an input, an output and a session.
type Shell struct {
	in      *bufio.Reader
	out     *errWriter
	session *session.Session
	styles  styles
	preload string
}

// New returns a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, sess *session.Session) *Shell {
	return &Shell{
		in:      bufio.NewReader(in),
		out:     &errWriter{w: out},
		session: sess,
		styles:  newStyles(out),
	}
}

// Preload makes Run load path right after the banner, before the first menu.
func (sh *Shell) Preload(path string) {
	sh.preload = path
}

// Run shows the menu until the user exits or input ends. Load failures and
// lookup misses are reported and the loop continues. A failed write on the
// output or a cancelled ctx ends Run with an error.
func (sh *Shell) Run(ctx context.Context) error {
	sh.println(sh.styles.banner.Render("Welcome to the course planner."))
	if sh.preload != "" {
		sh.Load(ctx, sh.preload)
	}

	for {
		if err := sh.out.err; err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := sh.readChoice()
		if errors.Is(err, io.EOF) {
			choice = ChoiceExit
		} else if err != nil {
			return err
		}

		switch choice {
		case ChoiceLoad:
			path, err := sh.prompt("Enter file name: ")
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			sh.Load(ctx, path)

		case ChoiceList:
			sh.printList()

		case ChoiceShow:
			if sh.session.State() != session.Loaded {
				sh.printNotLoaded()
				break
			}
			raw, err := sh.prompt("What course do you want to know about? ")
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			sh.printCourse(raw)

		case ChoiceExit:
			sh.println(sh.styles.banner.Render("Thank you for using the course planner!"))
			if err := sh.out.err; err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil

		default:
			sh.println(sh.styles.err.Render(fmt.Sprintf("%d is not a valid option.", choice)))
		}
	}
}

// Load loads path into the session and reports the outcome.
func (sh *Shell) Load(ctx context.Context, path string) bool {
	cat, err := sh.session.Load(ctx, path)
	if err == nil {
		sh.println(sh.styles.ok.Render("Data structure loaded successfully."))
		if skipped := cat.Stats().Skipped; skipped > 0 {
			sh.println(sh.styles.warn.Render(fmt.Sprintf("Skipped %d malformed line(s).", skipped)))
		}
		return true
	}

	var openErr *catalog.OpenError
	switch {
	case errors.As(err, &openErr):
		sh.println(sh.styles.err.Render("Error: cannot open file " + openErr.Path))
	case errors.Is(err, catalog.ErrEmpty):
		sh.println(sh.styles.warn.Render("Warning: file loaded but no valid course records were found."))
	default:
		logging.FromContext(ctx).Error("unexpected load error", "path", path, "error", err)
		sh.println(sh.styles.err.Render("Error: " + catalog.FormatUserError(err)))
	}
	return false
}

func (sh *Shell) printList() {
	cat, err := sh.session.Catalog()
	if err != nil {
		sh.printNotLoaded()
		return
	}
	catalog.WriteList(sh.out, cat)
}

func (sh *Shell) printCourse(raw string) {
	c, ok, err := sh.session.Lookup(raw)
	switch {
	case err != nil:
		sh.printNotLoaded()
	case !ok:
		catalog.WriteNotFound(sh.out, raw)
	default:
		catalog.WriteCourse(sh.out, c)
	}
}

func (sh *Shell) printNotLoaded() {
	sh.println(sh.styles.err.Render("Error: Please load course data first."))
}

// readChoice shows the menu and reads a number. Blank lines are ignored and
// anything that does not start with an integer is rejected with a hint.
// Input stops being read once the output has failed.
func (sh *Shell) readChoice() (int, error) {
	sh.print(menuText)
	sh.print("What would you like to do? ")

	for {
		line, err := sh.readLine()
		field := firstField(line)

		if field == "" {
			if err != nil {
				return 0, err
			}
			continue
		}

		if n, ok := leadingInt(field); ok {
			return n, nil
		}

		sh.println(sh.styles.err.Render("Please enter a number from the menu."))
		if sh.out.err != nil {
			return 0, fmt.Errorf("write output: %w", sh.out.err)
		}
		if err != nil {
			return 0, err
		}
		sh.print(menuText)
		sh.print("What would you like to do? ")
	}
}

// prompt writes label and returns the trimmed answer. A final line without
// a newline is returned together with io.EOF.
func (sh *Shell) prompt(label string) (string, error) {
	sh.print(label)
	line, err := sh.readLine()
	return strings.TrimSpace(line), err
}

func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// leadingInt reads an optionally signed integer from the start of s and
// ignores whatever follows it, so "2abc" selects 2.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (sh *Shell) print(s string) {
	io.WriteString(sh.out, s)
}

func (sh *Shell) println(s string) {
	io.WriteString(sh.out, s+"\n")
}

// errWriter keeps the first write error and refuses every write after it.
// Run checks it once per menu iteration.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
