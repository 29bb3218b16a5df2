package builtin

import (
	"os"

	"github.com/zsh0/zsh0/internal/shellerr"
)

// pwd prints the working directory, grounded on pwd.rs.
func pwd(args []string) (string, error) {
	if len(args) > 1 {
		return "", shellerr.New(shellerr.ArgUsage, "too many arguments")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", shellerr.Newf(shellerr.Syscall, "getcwd: %s", shellerr.StripOSSuffix(err.Error()))
	}
	return cwd + "\n", nil
}
