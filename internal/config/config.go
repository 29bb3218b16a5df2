// Package config holds the shell's fixed, file-less configuration:
// the bounded history size and the closed set of environment variables
// `echo` is permitted to expand, per spec.md section 6.
package config

const (
	// HistorySize bounds how many prior lines the line editor retains.
	HistorySize = 1000

	// KillReapPolls is how many times `kill` polls the reaper to try
	// to surface termination within the same invocation (spec.md 4.I).
	KillReapPolls = 5

	// KillReapIntervalMillis is the sleep, in milliseconds, between KillReapPolls attempts.
	KillReapIntervalMillis = 1

	// WorkerFlag is the sentinel first argument that re-enters the
	// binary as a one-shot utility-command worker (spec.md section 9).
	WorkerFlag = "--internal-worker"
)

// EchoEnvVars is the fixed, closed set of environment variables `echo`
// expands; anything else is left untouched. Order matters for nothing
// semantically, but is kept stable for readable diffs in tests.
var EchoEnvVars = []string{
	"USER",
	"HOSTNAME",
	"PID",
	"PATH",
	"SHELL",
	"UMASK",
	"HOME",
	"LANG",
	"TERM",
}
