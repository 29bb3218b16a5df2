package builtin

import (
	"strings"

	"github.com/zsh0/zsh0/internal/ansi"
	"github.com/zsh0/zsh0/internal/shellerr"
)

const manUsage = "Usage:\tman COMMAND"

// usageByName collects every built-in's USAGE string for `man` to
// print, grounded on man.rs's match table. Commands with no distinct
// usage string in the original (cd, ls, pwd, rm) get a one-line
// synopsis here instead of falling through to the "no manual entry"
// case, since they are real built-ins.
var usageByName = map[string]string{
	"cat":   catUsage,
	"cd":    "Usage:\tcd [DIRECTORY]",
	"cp":    cpUsage,
	"echo":  "Usage:\techo [STRING]...",
	"exit":  "Usage:\texit",
	"ls":    "Usage:\tls",
	"man":   manUsage,
	"mkdir": "Usage:\tmkdir DIRECTORY...",
	"mv":    mvUsage,
	"pwd":   "Usage:\tpwd",
	"rm":    "Usage:\trm FILE",
	"sleep": sleepUsage,
	"touch": touchUsage,
	"jobs":  jobsUsage,
	"fg":    fgUsage,
	"bg":    bgUsage,
	"kill":  killUsage,
}

// man prints the USAGE string for each named command, or a red
// "no manual entry" notice for anything unrecognized — grounded on
// man.rs.
func man(args []string) (string, error) {
	if len(args) < 2 {
		return "", shellerr.Usage("What manual page do you want?", manUsage)
	}

	var b strings.Builder
	for i, name := range args[1:] {
		if i > 0 {
			b.WriteByte('\n')
		}
		if usage, ok := usageByName[name]; ok {
			b.WriteString(usage)
		} else {
			b.WriteString(ansi.Red("No manual entry for " + name))
		}
	}
	b.WriteByte('\n')

	return b.String(), nil
}
