package builtin

import (
	"strconv"
	"time"

	"github.com/zsh0/zsh0/internal/shellerr"
)

const sleepUsage = "Usage:\tsleep MILLISECONDS"

// sleep blocks for the given number of milliseconds — grounded on
// sleep.rs. Its only purpose in this shell is to be a blocking
// foreground/background target for exercising job control.
func sleep(args []string) (string, error) {
	if len(args) < 2 {
		return "", shellerr.Usage("Not enough arguments", sleepUsage)
	}
	if len(args) > 2 {
		return "", shellerr.Usage("Too many arguments", sleepUsage)
	}

	ms, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", shellerr.New(shellerr.ArgUsage, "Failed to parse duration")
	}

	time.Sleep(time.Duration(ms) * time.Millisecond)
	return "", nil
}
