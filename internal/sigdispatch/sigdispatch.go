// Package sigdispatch installs the shell's process-wide signal
// handling: SIGINT/SIGTSTP are forwarded to the current foreground
// child's process group, and SIGTTIN/SIGTTOU are ignored so the shell
// can reclaim the terminal after a foreground child without being
// stopped itself — spec.md section 4.J.
//
// Go cannot install a C-style sa_sigaction callback directly, so the
// process-wide handler the spec describes is rendered as a dedicated
// goroutine reading from a signal.Notify channel; SIGTTIN/SIGTTOU are
// ignored via signal.Ignore, the direct Go equivalent of installing
// SIG_IGN. No other signal work happens outside this goroutine.
package sigdispatch

import (
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/zsh0/zsh0/internal/shelllog"
)

// Dispatcher owns the single well-known atomic cell the forwarding
// goroutine reads: the pgid of the current foreground child, or 0 if
// none. It cannot be a parameter, since the handler has no way to
// receive one — spec.md's design note in section 9.
type Dispatcher struct {
	currentChildPGID atomic.Int32
	log              *shelllog.Logger
	ch               chan os.Signal
}

// Install registers the handler described above and returns a
// Dispatcher. It must be called exactly once, at shell startup.
func Install(log *shelllog.Logger) *Dispatcher {
	d := &Dispatcher{log: log, ch: make(chan os.Signal, 8)}

	signal.Notify(d.ch, unix.SIGINT, unix.SIGTSTP)
	signal.Ignore(unix.SIGTTIN, unix.SIGTTOU)

	go d.loop()

	return d
}

func (d *Dispatcher) loop() {
	for sig := range d.ch {
		pgid := d.currentChildPGID.Load()
		if pgid <= 0 {
			// No foreground child: no side effect (testable property 7).
			continue
		}

		unixSig, ok := sig.(unix.Signal)
		if !ok {
			continue
		}

		if err := unix.Kill(-int(pgid), unixSig); err != nil {
			d.log.Debug("failed to forward signal", map[string]any{"signal": unixSig, "pgid": pgid, "error": err})
		}
	}
}

// SetForeground records pgid as the foreground child's process group.
// Called by the parent wait/suspend logic before blocking in waitpid.
func (d *Dispatcher) SetForeground(pgid int) {
	d.currentChildPGID.Store(int32(pgid))
}

// ClearForeground resets the foreground pgid to 0, the "no current
// child" sentinel.
func (d *Dispatcher) ClearForeground() {
	d.currentChildPGID.Store(0)
}

// Foreground returns the currently recorded foreground pgid, or 0.
func (d *Dispatcher) Foreground() int {
	return int(d.currentChildPGID.Load())
}
