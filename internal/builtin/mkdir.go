package builtin

import (
	"fmt"
	"os"
	"strings"

	"github.com/zsh0/zsh0/internal/shellerr"
)

// mkdir creates each named directory, collecting per-path errors
// (including an already-exists check) — grounded on mkdir.rs.
func mkdir(args []string) (string, error) {
	if len(args) < 2 {
		return "", shellerr.New(shellerr.ArgUsage, "Not enough arguments")
	}

	var errs []string
	for _, path := range args[1:] {
		if _, err := os.Stat(path); err == nil {
			errs = append(errs, fmt.Sprintf("%s: File exists", path))
			continue
		}
		if err := os.Mkdir(path, 0o755); err != nil {
			errs = append(errs, shellerr.StripOSSuffix(err.Error()))
		}
	}

	if len(errs) == 0 {
		return "", nil
	}
	return "", shellerr.New(shellerr.ArgUsage, strings.Join(errs, "\n"))
}
