// Package job implements the job table and its state machine
// (Running <-> Stopped -> Terminated), the non-blocking reaper, the
// jobspec resolver, and the job listing formatter — spec.md sections
// 3, 4.G, and 4.H.
package job

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/zsh0/zsh0/internal/shellerr"
)

// State is a job's position in the Running <-> Stopped -> Terminated
// state machine. Terminated jobs are never represented here — they
// are removed from the Table the moment the reaper observes them.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "Stopped"
	}
	return "Running"
}

// Job is one row of the job table: spec.md section 3's invariants
// (pgid > 0, jid > 0, one record per live child group) are the caller's
// responsibility to uphold when constructing one via Table.Add.
type Job struct {
	JID     int
	PGID    int
	State   State
	Command string
}

// Table owns the job records plus the Current/Previous pointers.
// It is mutated only by the main loop (the reaper) or by fg/bg/kill,
// matching spec.md section 5's single-writer resource model.
type Table struct {
	jobs     []*Job
	Current  int
	Previous int
}

// NewTable returns an empty job table.
func NewTable() *Table {
	return &Table{}
}

// Jobs returns the live job records in jid order.
func (t *Table) Jobs() []*Job {
	out := make([]*Job, len(t.jobs))
	copy(out, t.jobs)
	sort.Slice(out, func(i, j int) bool { return out[i].JID < out[j].JID })
	return out
}

// Find returns the job with the given jid, or nil.
func (t *Table) Find(jid int) *Job {
	for _, j := range t.jobs {
		if j.JID == jid {
			return j
		}
	}
	return nil
}

// FindByPGID returns the job owning pgid, or nil.
func (t *Table) FindByPGID(pgid int) *Job {
	for _, j := range t.jobs {
		if j.PGID == pgid {
			return j
		}
	}
	return nil
}

// nextJID assigns max(existing jids, 0) + 1 — a fresh integer, never
// reusing a hole left by a removed job (spec.md section 4.G).
func (t *Table) nextJID() int {
	max := 0
	for _, j := range t.jobs {
		if j.JID > max {
			max = j.JID
		}
	}
	return max + 1
}

// Add creates a new job record, promotes it to Current, and returns it.
func (t *Table) Add(pgid int, state State, command string) *Job {
	j := &Job{JID: t.nextJID(), PGID: pgid, State: state, Command: command}
	t.jobs = append(t.jobs, j)
	t.Previous = t.Current
	t.Current = j.JID
	return j
}

// remove deletes the job at jid and fixes Current/Previous per
// spec.md section 4.G: if the removed job was Current, Current takes
// the old Previous and Previous is cleared; if it was Previous,
// Previous is cleared.
func (t *Table) remove(jid int) {
	for i, j := range t.jobs {
		if j.JID == jid {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			break
		}
	}

	if jid == t.Current {
		t.Current = t.Previous
		t.Previous = 0
	} else if jid == t.Previous {
		t.Previous = 0
	}
}

// Promote makes jid the Current job, pushing the old Current down to
// Previous. Used by fg/bg when resuming an existing job, which must
// become the shell's new notion of "the" job regardless of how it got
// there (spec.md section 4.I).
func (t *Table) Promote(jid int) {
	if jid == t.Current {
		return
	}
	t.Previous = t.Current
	t.Current = jid
}

// SetState mutates the State of the job at jid in place, a no-op if
// jid is not tracked.
func (t *Table) SetState(jid int, state State) {
	if j := t.Find(jid); j != nil {
		j.State = state
	}
}

// Remove deletes the job at jid and fixes Current/Previous. Exported
// for fg, which removes a resumed job that exited or was killed while
// in the foreground, observed directly via waitpid rather than Sweep.
func (t *Table) Remove(jid int) {
	t.remove(jid)
}

// ReapEvent is one transition the reaper observed. Sweep prints
// nothing itself; callers (the REPL, jobs, kill) print each event
// with FormatEvent.
type ReapEvent struct {
	JID     int
	Kind    string // "stopped", "continued", "done", "exit", "terminated"
	Code    int
	Command string
}

// Sweep polls `waitpid(-1, WNOHANG|WUNTRACED|WCONTINUED)` until no
// further child has changed state, updating the table and returning
// the events observed in order — spec.md section 4.G.
func Sweep(t *Table) []ReapEvent {
	var events []ReapEvent

	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			break
		}

		j := t.FindByPGID(pid)
		if j == nil {
			continue
		}

		switch {
		case status.Stopped():
			if j.State != Stopped {
				j.State = Stopped
				t.Previous = t.Current
				t.Current = j.JID
				events = append(events, ReapEvent{JID: j.JID, Kind: "stopped", Command: j.Command})
			}
		case status.Continued():
			if j.State != Running {
				j.State = Running
				events = append(events, ReapEvent{JID: j.JID, Kind: "continued", Command: j.Command})
			}
		case status.Exited():
			code := status.ExitStatus()
			if code == 0 {
				events = append(events, ReapEvent{JID: j.JID, Kind: "done", Command: j.Command})
			} else {
				events = append(events, ReapEvent{JID: j.JID, Kind: "exit", Code: code, Command: j.Command})
			}
			t.remove(j.JID)
		case status.Signaled():
			events = append(events, ReapEvent{JID: j.JID, Kind: "terminated", Command: j.Command})
			t.remove(j.JID)
		}
	}

	return events
}

// FormatEvent renders a ReapEvent exactly as spec.md section 4.G
// specifies ("[jid]+\tStopped\t\t{command}", etc). The sign is always
// "+" here: every printed event was, at the moment of transition, the
// most recently touched job.
func FormatEvent(e ReapEvent) string {
	switch e.Kind {
	case "stopped":
		return fmt.Sprintf("[%d]+\tStopped\t\t%s", e.JID, e.Command)
	case "done":
		return fmt.Sprintf("[%d]+\tDone\t\t%s", e.JID, e.Command)
	case "exit":
		return fmt.Sprintf("[%d]+\tExit %d\t\t%s", e.JID, e.Code, e.Command)
	case "terminated":
		return fmt.Sprintf("[%d]+\tTerminated\t%s", e.JID, e.Command)
	default:
		return ""
	}
}

// ResolveJobspec maps a user token to a jid per spec.md section 4.H.
func ResolveJobspec(spec string, current, previous int) (int, error) {
	switch spec {
	case "%", "%+", "%%":
		if current > 0 {
			return current, nil
		}
		if previous > 0 {
			return previous, nil
		}
		return 0, shellerr.New(shellerr.JobSpec, "Current: no such job")
	case "%-":
		if previous > 0 {
			return previous, nil
		}
		if current > 0 {
			return current, nil
		}
		return 0, shellerr.New(shellerr.JobSpec, "Current: no such job")
	}

	raw := spec
	if strings.HasPrefix(spec, "%") {
		raw = spec[1:]
	} else if !isDigits(spec) {
		return 0, shellerr.Newf(shellerr.JobSpec, "Invalid job ID: %s", spec)
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, shellerr.Newf(shellerr.JobSpec, "Invalid job ID: %s", spec)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FormatOptions selects the flag-driven rendering the `jobs` built-in
// composes: -l (show pgid), -p (pgid only), -r (running only),
// -s (stopped only).
type FormatOptions struct {
	ShowPID     bool
	PIDOnly     bool
	RunningOnly bool
	StoppedOnly bool
}

const stateColWidth = 24

// sign returns "+" for Current, "-" for Previous, " " otherwise.
func sign(jid, current, previous int) string {
	switch jid {
	case current:
		return "+"
	case previous:
		return "-"
	default:
		return " "
	}
}

// FormatLine renders one job's listing line per spec.md section 4.H's
// format string.
func FormatLine(j *Job, opts FormatOptions, current, previous int) string {
	if opts.PIDOnly {
		return strconv.Itoa(j.PGID)
	}

	ampersand := ""
	if j.State == Running {
		ampersand = " &"
	}

	s := sign(j.JID, current, previous)
	state := fmt.Sprintf("%-*s", stateColWidth, j.State.String())

	if opts.ShowPID {
		return fmt.Sprintf("[%d]%s %-5d %s %s%s", j.JID, s, j.PGID, state, j.Command, ampersand)
	}
	return fmt.Sprintf("[%d]%s  %s %s%s", j.JID, s, state, j.Command, ampersand)
}

// Format renders the full listing for `jobs`, applying -r/-s and an
// explicit jobspec filter list (empty means "all jobs").
func Format(t *Table, opts FormatOptions, filterJIDs []int) string {
	var lines []string

	for _, j := range t.Jobs() {
		if len(filterJIDs) > 0 && !containsInt(filterJIDs, j.JID) {
			continue
		}
		if opts.RunningOnly && j.State == Stopped {
			continue
		}
		if opts.StoppedOnly && j.State == Running {
			continue
		}
		lines = append(lines, FormatLine(j, opts, t.Current, t.Previous))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
