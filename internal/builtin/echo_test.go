package builtin

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEchoJoinsArgsWithSpace(t *testing.T) {
	out, err := echo([]string{"echo", "hello", "world"})
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestEchoNoArgsPrintsNewline(t *testing.T) {
	out, err := echo([]string{"echo"})
	require.NoError(t, err)
	require.Equal(t, "\n", out)
}

// These cases are ported directly from echo.rs's test_special_characters,
// since process_backslashes's floor-division collapsing is easy to get
// subtly wrong by re-deriving it instead of reusing known-good vectors.
func TestEchoBackslashCollapsingUnquoted(t *testing.T) {
	out, err := echo([]string{"echo", `a\na`})
	require.NoError(t, err)
	require.Equal(t, "ana\n", out)

	out, err = echo([]string{"echo", `a\\na`})
	require.NoError(t, err)
	require.Equal(t, "a\na\n", out)

	out, err = echo([]string{"echo", `a\\\na`})
	require.NoError(t, err)
	require.Equal(t, "a\na\n", out)

	out, err = echo([]string{"echo", `a\\\\na`})
	require.NoError(t, err)
	require.Equal(t, "a\\na\n", out)
}

func TestEchoBackslashCollapsingQuoted(t *testing.T) {
	out, err := echo([]string{"echo", `"a\na"`})
	require.NoError(t, err)
	require.Equal(t, "a\na\n", out)

	out, err = echo([]string{"echo", `"a\\na"`})
	require.NoError(t, err)
	require.Equal(t, "a\na\n", out)

	out, err = echo([]string{"echo", `"a\\\na"`})
	require.NoError(t, err)
	require.Equal(t, "a\\na\n", out)
}

func TestEchoRedirectInQuotesIsLiteral(t *testing.T) {
	out, err := echo([]string{"echo", `">"`})
	require.NoError(t, err)
	require.Equal(t, ">\n", out)

	out, err = echo([]string{"echo", `'>>'`})
	require.NoError(t, err)
	require.Equal(t, ">>\n", out)
}

func TestEchoExpandsKnownEnvVar(t *testing.T) {
	os.Setenv("USER", "alice")
	defer os.Unsetenv("USER")

	out, err := echo([]string{"echo", "$USER"})
	require.NoError(t, err)
	require.Equal(t, "alice\n", out)
}

func TestEchoLeavesUnknownVarUntouched(t *testing.T) {
	out, err := echo([]string{"echo", "$NOT_IN_LIST"})
	require.NoError(t, err)
	require.Equal(t, "$NOT_IN_LIST\n", out)
}

func TestEchoRedirectsToFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out.txt"

	out, err := echo([]string{"echo", "hi", ">", path})
	require.NoError(t, err)
	require.Empty(t, out)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hi\n", string(contents))
}

func TestEchoOnlyFirstRedirectTargetIsUsed(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out.txt"

	out, err := echo([]string{"echo", "hello", ">", path, "file2"})
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = os.Stat(dir + "/file2")
	require.True(t, os.IsNotExist(err))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello file2\n", string(contents))
}

func TestProcessBackslashesHalvesRuns(t *testing.T) {
	require.Equal(t, `\`, processBackslashes(`\\`, 0))
	require.Equal(t, `\\`, processBackslashes(`\\\\`, 0))
	require.Equal(t, `\`, processBackslashes(`\`, 1))
}
