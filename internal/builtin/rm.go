package builtin

import (
	"os"

	"github.com/zsh0/zsh0/internal/shellerr"
)

// rm removes a single file, refusing directories — grounded on rm.rs.
func rm(args []string) (string, error) {
	if len(args) < 2 {
		return "", shellerr.New(shellerr.ArgUsage, "not enough arguments")
	}

	path := args[1]
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return "", shellerr.Newf(shellerr.ArgUsage, "%s: is a directory", path)
	}

	if err := os.Remove(path); err != nil {
		return "", shellerr.Newf(shellerr.Syscall, "%s: %s", path, shellerr.StripOSSuffix(err.Error()))
	}
	return "", nil
}
