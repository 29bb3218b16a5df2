// Package ansi wraps the shell's color/bold escape sequences. Per
// spec.md section 6, error text is red then restored to bold, and
// directory entries in `ls` are blue when stdout is a terminal.
package ansi

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	red   = "\x1b[31m"
	blue  = "\x1b[34m"
	bold  = "\x1b[1m"
	reset = "\x1b[0m"
)

// Stdout returns a colorable writer around os.Stdout (a no-op passthrough
// on platforms/terminals that don't support ANSI codes).
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// IsTerminal reports whether fd is attached to a terminal, gating the
// colorized `ls` rendering the same way lxd's `lxc exec` gates raw mode.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd)
}

// Red wraps msg in red, then restores bold — the exact sequence spec.md
// mandates for all user-visible error text.
func Red(msg string) string {
	return red + msg + reset + bold
}

// Blue wraps msg in blue, used for directory entries in `ls` output
// when stdout is a TTY.
func Blue(msg string) string {
	if !IsTerminal(os.Stdout.Fd()) {
		return msg
	}
	return blue + msg + reset
}

// Bold returns the bold escape alone, used to set the REPL's baseline
// style for the duration of the session (mirrors the teacher's TextStyle
// guard, see internal/repl).
func Bold() string { return bold }

// Reset returns the reset escape alone.
func Reset() string { return reset }

// PrintRedErrorln writes msg to w in red, prefixed and suffixed exactly
// as spec.md's error taxonomy requires.
func PrintRedErrorln(w io.Writer, msg string) {
	fmt.Fprintln(w, Red(msg))
}
