// Package builtin implements the in-process built-ins (state-modifying,
// job-aware, and utility) and the worker-side dispatch used by a
// re-exec'd `--internal-worker` process, per spec.md section 4.D, 4.I,
// and 4.K.
package builtin

import (
	"sort"

	"github.com/zsh0/zsh0/internal/job"
	"github.com/zsh0/zsh0/internal/launcher"
	"github.com/zsh0/zsh0/internal/shellerr"
	"github.com/zsh0/zsh0/internal/sigdispatch"
)

// Env is the mutable shell state job-aware and state-modifying
// built-ins operate on: the job table, the signal dispatcher (which
// fg hands to the foreground wait), the launcher, and the exit latch.
type Env struct {
	Table      *job.Table
	Dispatcher *sigdispatch.Dispatcher
	Launcher   *launcher.Launcher

	// ExitAttempted is the two-phase exit-with-stopped-jobs latch
	// (spec.md section 4.I): set on a refused first attempt, checked
	// on the next.
	ExitAttempted bool
}

// stateModifying built-ins must run in-process because they mutate
// shell-global state (cwd, process lifetime).
var stateModifying = map[string]bool{"cd": true, "exit": true}

// jobAware built-ins run in-process because they read or mutate the
// job table or shell environment directly.
var jobAware = map[string]bool{
	"echo": true, "pwd": true, "jobs": true, "fg": true, "bg": true, "kill": true,
}

// worker built-ins are routed through the worker launcher so a
// SIGINT can terminate them without killing the shell; they are also
// the set dispatched in-process by the `--internal-worker` re-entry.
var worker = map[string]bool{
	"cat": true, "cp": true, "ls": true, "mkdir": true, "man": true,
	"mv": true, "rm": true, "sleep": true, "touch": true,
}

// IsStateModifying reports whether name must run in-process and may
// change shell-global state.
func IsStateModifying(name string) bool { return stateModifying[name] }

// IsJobAware reports whether name runs in-process against the job table.
func IsJobAware(name string) bool { return jobAware[name] }

// IsWorker reports whether name is routed through the worker launcher.
func IsWorker(name string) bool { return worker[name] }

// IsKnown reports whether name is any recognized built-in, the
// dispatcher's (§4.D) CommandNotFound gate.
func IsKnown(name string) bool {
	return stateModifying[name] || jobAware[name] || worker[name]
}

// Names returns every recognized command name, sorted, for the line
// editor's tab-completion candidate list.
func Names() []string {
	names := make([]string, 0, len(stateModifying)+len(jobAware)+len(worker))
	for n := range stateModifying {
		names = append(names, n)
	}
	for n := range jobAware {
		names = append(names, n)
	}
	for n := range worker {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run dispatches a state-modifying or job-aware built-in in-process.
// args is the full token list, command name included.
func (e *Env) Run(name string, args []string) (string, error) {
	switch name {
	case "cd":
		return cd(args)
	case "exit":
		return e.exit(args)
	case "echo":
		return echo(args)
	case "pwd":
		return pwd(args)
	case "jobs":
		return e.jobs(args)
	case "fg":
		return e.fg(args)
	case "bg":
		return e.bg(args)
	case "kill":
		return e.kill(args)
	default:
		return "", shellerr.Newf(shellerr.CommandNotFound, "command not found: %s", name)
	}
}

// RunWorker dispatches a utility built-in, the pure argv-to-output
// functions that run either inside a re-exec'd worker process or, for
// testing, directly in-process.
func RunWorker(name string, args []string) (string, error) {
	switch name {
	case "cat":
		return cat(args)
	case "cp":
		return cp(args)
	case "ls":
		return ls(args)
	case "mkdir":
		return mkdir(args)
	case "man":
		return man(args)
	case "mv":
		return mv(args)
	case "rm":
		return rm(args)
	case "sleep":
		return sleep(args)
	case "touch":
		return touch(args)
	default:
		return "", shellerr.Newf(shellerr.CommandNotFound, "command not found: %s", name)
	}
}
