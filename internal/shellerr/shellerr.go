// Package shellerr defines the error taxonomy shared by every shell
// component: parse failures, unresolvable job specs, unknown commands,
// syscall failures, and built-in argument-usage errors.
package shellerr

import (
	"fmt"
	"strings"
)

// Kind classifies an Error by the taxonomy below. The REPL does not
// read it: whether a command-name prefix is added is decided from the
// message text (a leading "0-shell: ").
type Kind int

const (
	// Parse covers unbalanced quotes and dangling redirection operators.
	Parse Kind = iota
	// CommandNotFound covers an unknown name at argv[0].
	CommandNotFound
	// JobSpec covers an unresolvable %-spec or integer job id.
	JobSpec
	// Syscall covers fork/waitpid/tcsetpgrp/setpgid/kill/sigaction failures.
	Syscall
	// ArgUsage covers arity/flag errors in a built-in.
	ArgUsage
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case CommandNotFound:
		return "command not found"
	case JobSpec:
		return "job spec"
	case Syscall:
		return "syscall"
	case ArgUsage:
		return "arg usage"
	default:
		return "unknown"
	}
}

// Error is the shell's error type. Msg is already user-facing text;
// Kind is carried alongside it and is never printed itself.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// New builds an Error of the given kind from a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error of the given kind from a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ParseError is the fixed message spec.md mandates for unbalanced
// quotes and dangling redirection operators.
func ParseError() *Error {
	return New(Parse, "0-shell: parse error near `\\n'")
}

// Usage wraps an ArgUsage error with the built-in's USAGE string.
func Usage(msg, usage string) *Error {
	return Newf(ArgUsage, "%s\n%s", msg, usage)
}

// StripOSSuffix removes the platform-specific "(os N)" suffix Go's
// os.PathError / os.LinkError stringify onto syscall failures, matching
// the original implementation's convention of showing only the textual
// description of a Syscall error.
func StripOSSuffix(msg string) string {
	if i := strings.Index(msg, " (os "); i >= 0 {
		return msg[:i]
	}
	return msg
}

// FromSyscall wraps a raw OS error as a Syscall-kind Error, stripping
// the "(os N)" suffix.
func FromSyscall(err error) *Error {
	return New(Syscall, StripOSSuffix(err.Error()))
}
