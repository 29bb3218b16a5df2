package builtin

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zsh0/zsh0/internal/job"
)

func TestCdChangesDirectory(t *testing.T) {
	start, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(start)

	dir := t.TempDir()
	_, err = cd([]string{"cd", dir})
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	wantDir, err := os.Stat(dir)
	require.NoError(t, err)
	gotDir, err := os.Stat(cwd)
	require.NoError(t, err)
	require.True(t, os.SameFile(wantDir, gotDir))
}

func TestCdNoArgumentGoesHome(t *testing.T) {
	start, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(start)

	_, err = cd([]string{"cd"})
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	wantDir, err := os.Stat(home)
	require.NoError(t, err)
	gotDir, err := os.Stat(cwd)
	require.NoError(t, err)
	require.True(t, os.SameFile(wantDir, gotDir))
}

func TestCdNonexistentDirectoryErrors(t *testing.T) {
	_, err := cd([]string{"cd", "/no/such/path/at/all"})
	require.Error(t, err)
}

func TestCdTooManyArguments(t *testing.T) {
	_, err := cd([]string{"cd", "a", "b"})
	require.Error(t, err)
}

func TestExitRequestsExitWhenNoStoppedJobs(t *testing.T) {
	env := &Env{Table: job.NewTable()}
	_, err := env.exit([]string{"exit"})
	require.True(t, errors.Is(err, ExitRequested))
}

func TestExitWarnsOnceThenProceedsWithStoppedJob(t *testing.T) {
	table := job.NewTable()
	table.Add(123, job.Stopped, "sleep 100")
	env := &Env{Table: table}

	_, err := env.exit([]string{"exit"})
	require.Error(t, err)
	require.False(t, errors.Is(err, ExitRequested))
	require.True(t, env.ExitAttempted)

	_, err = env.exit([]string{"exit"})
	require.True(t, errors.Is(err, ExitRequested))
}

func TestExitTooManyArguments(t *testing.T) {
	env := &Env{Table: job.NewTable()}
	_, err := env.exit([]string{"exit", "1", "2"})
	require.Error(t, err)
	require.False(t, errors.Is(err, ExitRequested))
}
