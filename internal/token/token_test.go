package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zsh0/zsh0/internal/token"
)

func TestSplitWords(t *testing.T) {
	toks, err := token.Split("echo hello world")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "hello", "world"}, toks)
}

func TestSplitQuoting(t *testing.T) {
	toks, err := token.Split(`echo "hello world" 'a b'`)
	require.NoError(t, err)
	require.Equal(t, []string{"echo", `"hello world"`, `'a b'`}, toks)
}

func TestSplitRedirectOperators(t *testing.T) {
	toks, err := token.Split("echo hi > out.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "hi", ">", "out.txt"}, toks)
}

func TestSplitAppendOperator(t *testing.T) {
	toks, err := token.Split("cat f >> out.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "f", ">>", "out.txt"}, toks)
}

func TestSplitDanglingOperatorIsParseError(t *testing.T) {
	_, err := token.Split("echo hi >")
	require.Error(t, err)
}

func TestSplitBackgroundMarker(t *testing.T) {
	toks, err := token.Split("sleep 100 &")
	require.NoError(t, err)
	require.Equal(t, []string{"sleep", "100", token.Background}, toks)
}

func TestSplitAmpersandInsideQuotesIsNotBackground(t *testing.T) {
	toks, err := token.Split(`echo "a & b"`)
	require.NoError(t, err)
	require.Equal(t, []string{"echo", `"a & b"`}, toks)
}

func TestSplitEmptyLine(t *testing.T) {
	toks, err := token.Split("")
	require.NoError(t, err)
	require.Empty(t, toks)
}
