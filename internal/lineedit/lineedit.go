// Package lineedit implements the raw-mode line editor: per-keystroke
// cursor editing, bounded history, and tab completion — spec.md
// section 4.C.
package lineedit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/zsh0/zsh0/internal/builtin"
	"github.com/zsh0/zsh0/internal/config"
)

// Editor owns the bounded history ring and the raw-mode terminal
// handle for the lifetime of the shell.
type Editor struct {
	history []string
	out     io.Writer
	fd      int
}

// New returns an Editor writing prompts/echo to stdout and reading
// raw keys from stdin.
func New() *Editor {
	return &Editor{out: os.Stdout, fd: int(os.Stdin.Fd())}
}

// ErrEOF is returned when Ctrl-D is pressed at an empty prompt — the
// "end of input" signal spec.md section 4.C assigns to it.
var ErrEOF = fmt.Errorf("end of input")

// ErrInterrupted is returned when Ctrl-C is pressed at an empty prompt.
var ErrInterrupted = fmt.Errorf("interrupted")

// ReadLine acquires raw mode, renders the prompt, and reads one
// logical line, restoring cooked mode on every exit path — spec.md's
// scoped terminal-state guard, rendered here as a defer rather than a
// Drop impl.
func (e *Editor) ReadLine() (string, error) {
	oldState, err := term.MakeRaw(e.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(e.fd, oldState)

	prompt := e.prompt()
	fmt.Fprintf(e.out, "\r%s", prompt)

	var input []rune
	cursor := 0
	historyPos := len(e.history)

	reader := newKeyReader(os.Stdin)

	for {
		key, err := reader.next()
		if err != nil {
			return "", err
		}

		switch key.kind {
		case keyCtrlC:
			if len(input) == 0 {
				fmt.Fprint(e.out, "\r\n")
				return "", ErrInterrupted
			}
		case keyCtrlD:
			if len(input) == 0 {
				fmt.Fprint(e.out, "\r\n")
				return "", ErrEOF
			}
		case keyCtrlU:
			input = input[:0]
			cursor = 0
		case keyEnter:
			fmt.Fprint(e.out, "\r\n")
			line := string(input)
			e.pushHistory(line)
			return line, nil
		case keyTab:
			input, cursor = e.complete(input, cursor, prompt)
		case keyBackspace:
			if cursor > 0 {
				input = append(input[:cursor-1], input[cursor:]...)
				cursor--
			}
		case keyLeft:
			if cursor > 0 {
				cursor--
			}
		case keyRight:
			if cursor < len(input) {
				cursor++
			}
		case keyUp:
			if len(e.history) > 0 && historyPos > 0 {
				historyPos--
				input = []rune(e.history[historyPos])
				cursor = len(input)
			}
		case keyDown:
			if historyPos < len(e.history)-1 {
				historyPos++
				input = []rune(e.history[historyPos])
				cursor = len(input)
			} else if historyPos < len(e.history) {
				historyPos = len(e.history)
				input = input[:0]
				cursor = 0
			}
		case keyRune:
			input = append(input[:cursor], append([]rune{key.r}, input[cursor:]...)...)
			cursor++
		}

		e.redraw(prompt, input, cursor)
	}
}

func (e *Editor) prompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	return cwd + " ▶ "
}

func (e *Editor) redraw(prompt string, input []rune, cursor int) {
	fmt.Fprintf(e.out, "\r%s\x1b[K%s", prompt, string(input))
	moveLeft := runewidth.StringWidth(string(input[cursor:]))
	if moveLeft > 0 {
		fmt.Fprintf(e.out, "\x1b[%dD", moveLeft)
	}
}

func (e *Editor) pushHistory(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	e.history = append(e.history, line)
	if len(e.history) > config.HistorySize {
		e.history = e.history[len(e.history)-config.HistorySize:]
	}
}

// complete implements spec.md's tab-completion contract: the cursor
// word completes against the built-in command list if it is the
// first word on the line, else against the current directory's
// entries. A single match is inserted in place; multiple matches are
// printed sorted on a single line, separated by two spaces (not laid
// out in a column grid), and the prompt is redrawn.
func (e *Editor) complete(input []rune, cursor int, prompt string) ([]rune, int) {
	line := string(input[:cursor])
	fields := strings.Fields(line)

	isFirstWord := len(fields) == 0 || (!strings.HasSuffix(line, " ") && len(fields) == 1)

	last := ""
	if len(fields) > 0 && !strings.HasSuffix(line, " ") {
		last = fields[len(fields)-1]
	}

	var candidates []string
	if isFirstWord {
		candidates = prefixMatches(builtin.Names(), last)
	} else {
		candidates = prefixMatches(dirEntries(), last)
	}

	switch len(candidates) {
	case 0:
		return input, cursor
	case 1:
		prefix := strings.TrimSuffix(line, last)
		newLine := prefix + candidates[0] + " "
		newInput := []rune(newLine + string(input[cursor:]))
		return newInput, len([]rune(newLine))
	default:
		e.displayMatches(candidates, prompt, string(input))
		return input, cursor
	}
}

func (e *Editor) displayMatches(matches []string, prompt, input string) {
	formatted := shortFormatList(matches)
	lines := strings.Count(formatted, "\n") + 1

	fmt.Fprintf(e.out, "\r\n%s", formatted)
	fmt.Fprintf(e.out, "\x1b[%dA", lines)
	fmt.Fprintf(e.out, "\r%s%s", prompt, input)
}

func shortFormatList(items []string) string {
	sort.Strings(items)
	return strings.Join(items, "  ")
}

func prefixMatches(data []string, partial string) []string {
	var out []string
	for _, item := range data {
		if strings.HasPrefix(item, partial) {
			out = append(out, item)
		}
	}
	return out
}

func dirEntries() []string {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
