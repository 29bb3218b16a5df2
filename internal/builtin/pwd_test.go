package builtin

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPwdMatchesGetwd(t *testing.T) {
	want, err := os.Getwd()
	require.NoError(t, err)

	out, err := pwd([]string{"pwd"})
	require.NoError(t, err)
	require.Equal(t, want+"\n", out)
}
