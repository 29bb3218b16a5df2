package job_test

import (
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zsh0/zsh0/internal/job"
)

// These drive real child processes through testdata/*.sh fixtures
// rather than mocking waitpid, mirroring
// shared/subprocess/bgpm_test.go's TestSignalHandling/TestStopRestart.

func startScript(t *testing.T, name string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sh", filepath.Join("testdata", name))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		_, _ = cmd.Process.Wait()
	})
	return cmd
}

// sweepUntil polls job.Sweep until it has observed at least want
// events or a deadline passes, since Sweep is non-blocking (WNOHANG)
// and a just-started child may not have changed state yet.
func sweepUntil(t *testing.T, table *job.Table, want int) []job.ReapEvent {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	var events []job.ReapEvent
	for time.Now().Before(deadline) {
		events = append(events, job.Sweep(table)...)
		if len(events) >= want {
			return events
		}
		time.Sleep(10 * time.Millisecond)
	}
	return events
}

func TestSweepReapsCleanExit(t *testing.T) {
	table := job.NewTable()
	cmd := startScript(t, "exit_success.sh")
	j := table.Add(cmd.Process.Pid, job.Running, "exit_success.sh")

	events := sweepUntil(t, table, 1)
	require.Len(t, events, 1)
	require.Equal(t, "done", events[0].Kind)
	require.Equal(t, j.JID, events[0].JID)
	require.Nil(t, table.Find(j.JID))
}

func TestSweepReapsNonzeroExit(t *testing.T) {
	table := job.NewTable()
	cmd := startScript(t, "exit_failure.sh")
	table.Add(cmd.Process.Pid, job.Running, "exit_failure.sh")

	events := sweepUntil(t, table, 1)
	require.Len(t, events, 1)
	require.Equal(t, "exit", events[0].Kind)
	require.Equal(t, 7, events[0].Code)
}

func TestSweepObservesStopThenContinueThenExit(t *testing.T) {
	table := job.NewTable()
	cmd := startScript(t, "stop_and_continue.sh")
	j := table.Add(cmd.Process.Pid, job.Running, "stop_and_continue.sh")

	stopped := sweepUntil(t, table, 1)
	require.Len(t, stopped, 1)
	require.Equal(t, "stopped", stopped[0].Kind)
	require.Equal(t, job.Stopped, table.Find(j.JID).State)
	require.Equal(t, j.JID, table.Current)

	require.NoError(t, syscall.Kill(-cmd.Process.Pid, syscall.SIGCONT))

	continued := sweepUntil(t, table, 1)
	require.Len(t, continued, 1)
	require.Equal(t, "continued", continued[0].Kind)
	require.Equal(t, job.Running, table.Find(j.JID).State)

	done := sweepUntil(t, table, 1)
	require.Len(t, done, 1)
	require.Equal(t, "done", done[0].Kind)
	require.Nil(t, table.Find(j.JID))
}

func TestSweepReapsSignaledTermination(t *testing.T) {
	table := job.NewTable()
	cmd := startScript(t, "sleep_forever.sh")
	j := table.Add(cmd.Process.Pid, job.Running, "sleep_forever.sh")

	require.NoError(t, syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM))

	events := sweepUntil(t, table, 1)
	require.Len(t, events, 1)
	require.Equal(t, "terminated", events[0].Kind)
	require.Nil(t, table.Find(j.JID))
}
