package builtin

import (
	"os"

	"github.com/zsh0/zsh0/internal/job"
	"github.com/zsh0/zsh0/internal/launcher"
	"github.com/zsh0/zsh0/internal/shellerr"
)

// cd changes the working directory, falling back to the user's home
// directory with no argument, grounded on cd.rs.
func cd(args []string) (string, error) {
	if len(args) > 2 {
		return "", shellerr.New(shellerr.ArgUsage, "Too many arguments")
	}

	if len(args) < 2 {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", shellerr.New(shellerr.ArgUsage, "Could not determine home directory")
		}
		if err := os.Chdir(home); err != nil {
			return "", shellerr.FromSyscall(err)
		}
		return "", nil
	}

	path := args[1]
	if err := os.Chdir(path); err != nil {
		return "", shellerr.Newf(shellerr.Syscall, "%s: %s", path, shellerr.StripOSSuffix(err.Error()))
	}
	return "", nil
}

// stoppedJobsWarning is the fixed message `exit`'s first attempt
// prints when a stopped job is present, matching exit.rs's sibling
// STOPPED_JOBS_WARNING constant in the original's repl-level guard.
const stoppedJobsWarning = "There are stopped jobs."

// exit implements the two-phase stopped-jobs guard (spec.md section
// 4.I / 8 seed scenario 8): a first attempt with a Stopped job present
// warns and latches; any later attempt proceeds, since other commands
// in between do not reset the latch. It accepts no arguments, so no
// exit status can be given. On actual
// exit, the caller (the REPL) is responsible for signaling every
// remaining job's group with SIGHUP then SIGCONT and terminating the
// process — this function only decides whether to refuse.
func (e *Env) exit(args []string) (string, error) {
	if len(args) > 1 {
		return "", shellerr.New(shellerr.ArgUsage, "too many arguments")
	}

	hasStopped := false
	for _, j := range e.Table.Jobs() {
		if j.State == job.Stopped {
			hasStopped = true
			break
		}
	}

	if hasStopped && !e.ExitAttempted {
		e.ExitAttempted = true
		return "", shellerr.New(shellerr.ArgUsage, stoppedJobsWarning)
	}

	return "", ExitRequested
}

// ExitRequested is the sentinel error Run returns for `exit` once it
// has decided to proceed; the REPL checks for it with errors.Is rather
// than printing it as a real error.
var ExitRequested = shellerr.New(shellerr.ArgUsage, "")

// Shutdown sends SIGHUP then SIGCONT to every remaining job's process
// group, matching repl.rs's final cleanup loop before process::exit.
func Shutdown(t *job.Table) {
	for _, j := range t.Jobs() {
		_ = launcher.Hangup(j.PGID)
		_ = launcher.ContinueStopped(j.PGID)
	}
}
