package builtin

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zsh0/zsh0/internal/shellerr"
)

const touchUsage = "Usage:\ttouch FILE..."

// touch creates each named file if absent, or updates its
// modification time if present — grounded on touch.rs.
func touch(args []string) (string, error) {
	if len(args) < 2 {
		return "", shellerr.Usage("Not enough arguments", touchUsage)
	}

	var errs []string
	now := time.Now()

	for _, path := range args[1:] {
		if _, err := os.Stat(path); err == nil {
			if err := os.Chtimes(path, now, now); err != nil {
				errs = append(errs, fmt.Sprintf("touch: %s: %s", path, shellerr.StripOSSuffix(err.Error())))
			}
			continue
		}
		f, err := os.Create(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("touch: %s: %s", path, shellerr.StripOSSuffix(err.Error())))
			continue
		}
		f.Close()
	}

	if len(errs) == 0 {
		return "", nil
	}
	return "", shellerr.New(shellerr.ArgUsage, strings.Join(errs, "\n"))
}
