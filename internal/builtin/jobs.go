package builtin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/zsh0/zsh0/internal/ansi"
	"github.com/zsh0/zsh0/internal/config"
	"github.com/zsh0/zsh0/internal/job"
	"github.com/zsh0/zsh0/internal/launcher"
	"github.com/zsh0/zsh0/internal/shellerr"
)

const jobsUsage = "Usage:\tjobs [-lprst] [jobspec ...]"
const fgUsage = "Usage: fg [ID]"
const bgUsage = "Usage:\tbg [jobspec ...]"
const killUsage = "Usage:\tkill <PID>|%[+|-|%%|<JOB_ID>]"

// jobs runs the reaper, parses -l/-p/-r/-s flags and any jobspec
// filters, and renders the listing — spec.md section 4.I.
func (e *Env) jobs(args []string) (string, error) {
	for _, event := range job.Sweep(e.Table) {
		fmt.Println(job.FormatEvent(event))
	}

	var opts job.FormatOptions
	var filter []int
	table := false

	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "-") {
			for _, c := range arg[1:] {
				switch c {
				case 'l':
					opts.ShowPID = true
				case 'p':
					opts.PIDOnly = true
				case 'r':
					opts.RunningOnly = true
				case 's':
					opts.StoppedOnly = true
				case 't':
					table = true
				default:
					return "", shellerr.Usage(fmt.Sprintf("Invalid option -- '%c'", c), jobsUsage)
				}
			}
			continue
		}

		jid, err := job.ResolveJobspec(arg, e.Table.Current, e.Table.Previous)
		if err != nil {
			return "", err
		}
		filter = append(filter, jid)
	}

	if table {
		return formatJobsTable(e.Table, opts, filter), nil
	}
	return job.Format(e.Table, opts, filter), nil
}

// formatJobsTable renders the same filtered job set as jobs' default
// output, but as a bordered multi-column table via tablewriter — an
// additive `-t` view alongside the fixed-format default, since spec.md
// section 4.H mandates the latter's exact text for scripting.
func formatJobsTable(t *job.Table, opts job.FormatOptions, filterJIDs []int) string {
	var b strings.Builder
	writer := tablewriter.NewWriter(&b)
	writer.SetHeader([]string{"JID", "PGID", "STATE", "COMMAND"})

	for _, j := range t.Jobs() {
		if len(filterJIDs) > 0 && !containsJID(filterJIDs, j.JID) {
			continue
		}
		if opts.RunningOnly && j.State == job.Stopped {
			continue
		}
		if opts.StoppedOnly && j.State == job.Running {
			continue
		}
		writer.Append([]string{strconv.Itoa(j.JID), strconv.Itoa(j.PGID), j.State.String(), j.Command})
	}

	writer.Render()
	return b.String()
}

func containsJID(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// fg promotes a resolved job to the foreground: sends SIGCONT, waits,
// and either leaves it Stopped (refreshed current) or removes it on
// termination — spec.md section 4.I.
func (e *Env) fg(args []string) (string, error) {
	job.Sweep(e.Table)

	var jid int
	var err error
	if len(args) < 2 {
		jid, err = job.ResolveJobspec("%", e.Table.Current, e.Table.Previous)
	} else {
		jid, err = job.ResolveJobspec(args[1], e.Table.Current, e.Table.Previous)
	}
	if err != nil {
		return "", err
	}

	j := e.Table.Find(jid)
	if j == nil {
		return "", shellerr.Newf(shellerr.JobSpec, "No such job: %d", jid)
	}

	fmt.Println(j.Command)

	e.Table.Promote(jid)
	if err := launcher.ContinueStopped(j.PGID); err != nil {
		return "", shellerr.FromSyscall(err)
	}

	outcome, err := launcher.WaitForeground(e.Dispatcher, j.PGID)
	if err != nil {
		return "", err
	}

	if outcome.SigintNewline {
		fmt.Println()
	}

	if outcome.Stopped {
		e.Table.SetState(jid, job.Stopped)
		fmt.Printf("\n[%d]+\tStopped\t\t%s\n", jid, j.Command)
	} else {
		e.Table.Remove(jid)
	}

	return "", nil
}

// bg resumes each resolved, Stopped job in a deduplicated target set,
// collecting failures to report together after successes, and
// returning a "{success}:{failure}" payload for testability — spec.md
// section 4.I.
func (e *Env) bg(args []string) (string, error) {
	job.Sweep(e.Table)

	targets := map[int]bool{}
	var failures []string
	failureCount := 0

	if len(args) < 2 {
		switch {
		case e.Table.Current > 0:
			targets[e.Table.Current] = true
		case e.Table.Previous > 0:
			targets[e.Table.Previous] = true
		default:
			return "", shellerr.New(shellerr.JobSpec, "Current: no such job")
		}
	} else {
		for _, spec := range args[1:] {
			jid, err := job.ResolveJobspec(spec, e.Table.Current, e.Table.Previous)
			if err != nil {
				failures = append(failures, err.Error())
				failureCount++
				continue
			}
			targets[jid] = true
		}
	}

	successCount := 0
	var successLines []string

	for jid := range targets {
		j := e.Table.Find(jid)
		if j == nil {
			failures = append(failures, fmt.Sprintf("No such job ID: %d", jid))
			failureCount++
			continue
		}
		if j.State != job.Stopped {
			failures = append(failures, fmt.Sprintf("Job is not stopped: %d", jid))
			failureCount++
			continue
		}

		if err := launcher.ContinueStopped(j.PGID); err != nil {
			failures = append(failures, fmt.Sprintf("Failed to resume job %d (pid %d): %s", jid, j.PGID, shellerr.StripOSSuffix(err.Error())))
			failureCount++
			continue
		}

		e.Table.SetState(jid, job.Running)
		e.Table.Promote(jid)
		successCount++
		successLines = append(successLines, fmt.Sprintf("[%d]+\t%s &", jid, j.Command))
	}

	for _, line := range successLines {
		fmt.Println(line)
	}
	if len(failures) > 0 {
		ansi.PrintRedErrorln(ansi.Stdout(), strings.Join(failures, "\n"))
	}

	return fmt.Sprintf("%d:%d", successCount, failureCount), nil
}

// kill resolves a PID or jobspec to a process group, sends SIGTERM
// (followed by SIGCONT if the job is Stopped, so the queued SIGTERM is
// delivered), then polls the reaper a bounded number of times to
// surface termination within the same invocation — spec.md section 4.I.
func (e *Env) kill(args []string) (string, error) {
	job.Sweep(e.Table)

	if len(args) > 2 {
		return "", shellerr.Usage("Too many arguments", killUsage)
	}
	if len(args) < 2 {
		return "", shellerr.Usage("Not enough arguments", killUsage)
	}

	arg := args[1]
	var pgid int
	stopped := false

	if strings.HasPrefix(arg, "%") {
		jid, err := job.ResolveJobspec(arg, e.Table.Current, e.Table.Previous)
		if err != nil {
			return "", err
		}
		j := e.Table.Find(jid)
		if j == nil {
			return "", shellerr.Newf(shellerr.JobSpec, "No such job ID: %s", arg)
		}
		pgid = j.PGID
		stopped = j.State == job.Stopped
	} else {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "", shellerr.Newf(shellerr.ArgUsage, "Failed to parse PID: %s", arg)
		}
		if n <= 0 {
			return "", shellerr.New(shellerr.ArgUsage, "PID must be positive")
		}
		pgid = n
		if j := e.Table.FindByPGID(pgid); j != nil {
			stopped = j.State == job.Stopped
		}
	}

	if err := launcher.Terminate(pgid); err != nil {
		return "", shellerr.Newf(shellerr.Syscall, "Failed to kill %d: %s", pgid, shellerr.StripOSSuffix(err.Error()))
	}
	if stopped {
		if err := launcher.ContinueStopped(pgid); err != nil {
			return "", shellerr.Newf(shellerr.Syscall, "Failed to resume %d for termination: %s", pgid, shellerr.StripOSSuffix(err.Error()))
		}
	}

	for i := 0; i < config.KillReapPolls; i++ {
		for _, event := range job.Sweep(e.Table) {
			fmt.Println(job.FormatEvent(event))
		}
		if e.Table.FindByPGID(pgid) == nil {
			break
		}
		time.Sleep(config.KillReapIntervalMillis * time.Millisecond)
	}

	return "", nil
}
