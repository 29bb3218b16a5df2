package job_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zsh0/zsh0/internal/job"
)

func TestAddPromotesCurrentAndPrevious(t *testing.T) {
	table := job.NewTable()

	first := table.Add(100, job.Running, "sleep 100 &")
	require.Equal(t, first.JID, table.Current)
	require.Zero(t, table.Previous)

	second := table.Add(200, job.Running, "sleep 200 &")
	require.Equal(t, second.JID, table.Current)
	require.Equal(t, first.JID, table.Previous)
}

func TestRemoveCurrentFallsBackToPrevious(t *testing.T) {
	table := job.NewTable()
	first := table.Add(100, job.Running, "a &")
	second := table.Add(200, job.Running, "b &")

	table.Remove(second.JID)

	require.Equal(t, first.JID, table.Current)
	require.Zero(t, table.Previous)
}

func TestPromoteSwapsCurrentAndPrevious(t *testing.T) {
	table := job.NewTable()
	first := table.Add(100, job.Running, "a &")
	second := table.Add(200, job.Running, "b &")

	table.Promote(first.JID)

	require.Equal(t, first.JID, table.Current)
	require.Equal(t, second.JID, table.Previous)
}

func TestSetStateIsNoopForUnknownJID(t *testing.T) {
	table := job.NewTable()
	table.SetState(99, job.Stopped)
	require.Nil(t, table.Find(99))
}

func TestResolveJobspecCurrentAndPrevious(t *testing.T) {
	jid, err := job.ResolveJobspec("%", 3, 2)
	require.NoError(t, err)
	require.Equal(t, 3, jid)

	jid, err = job.ResolveJobspec("%-", 3, 2)
	require.NoError(t, err)
	require.Equal(t, 2, jid)
}

func TestResolveJobspecExplicitID(t *testing.T) {
	jid, err := job.ResolveJobspec("%5", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 5, jid)

	jid, err = job.ResolveJobspec("5", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 5, jid)
}

func TestResolveJobspecInvalid(t *testing.T) {
	_, err := job.ResolveJobspec("%abc", 0, 0)
	require.Error(t, err)

	_, err = job.ResolveJobspec("%", 0, 0)
	require.Error(t, err)
}

func TestFormatEmptyTable(t *testing.T) {
	table := job.NewTable()
	require.Empty(t, job.Format(table, job.FormatOptions{}, nil))
}

func TestFormatLineMarksCurrentAndPrevious(t *testing.T) {
	table := job.NewTable()
	first := table.Add(100, job.Running, "sleep 100")
	second := table.Add(200, job.Stopped, "sleep 200")

	out := job.Format(table, job.FormatOptions{}, nil)
	require.Contains(t, out, "[1]-")
	require.Contains(t, out, "[2]+")
	require.Contains(t, out, first.Command)
	require.Contains(t, out, second.Command)
}

func TestFormatFiltersByJobspec(t *testing.T) {
	table := job.NewTable()
	table.Add(100, job.Running, "a &")
	second := table.Add(200, job.Running, "b &")

	out := job.Format(table, job.FormatOptions{}, []int{second.JID})
	require.Contains(t, out, "b &")
	require.NotContains(t, out, "a &")
}
