package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/zsh0/zsh0/internal/ansi"
	"github.com/zsh0/zsh0/internal/builtin"
	"github.com/zsh0/zsh0/internal/config"
	"github.com/zsh0/zsh0/internal/repl"
	"github.com/zsh0/zsh0/internal/shelllog"
)

type cmdGlobal struct {
	flagLogDebug   bool
	flagLogVerbose bool
	flagLogPath    string
}

func main() {
	// The re-exec sentinel bypasses cobra entirely: a worker process is
	// never a CLI invocation in its own right, just this same binary
	// asked to run exactly one utility command in its own process
	// group. See internal/launcher's package doc for why re-exec
	// replaces a bare fork here.
	if len(os.Args) > 1 && os.Args[1] == config.WorkerFlag {
		os.Exit(runWorker(os.Args[2:]))
	}

	app := &cobra.Command{}
	app.Use = "zsh0"
	app.Short = "An interactive shell with job control"
	app.SilenceUsage = true
	app.SilenceErrors = true

	globalCmd := cmdGlobal{}
	app.PersistentFlags().BoolVar(&globalCmd.flagLogDebug, "debug", false, "Show all debug messages")
	app.PersistentFlags().BoolVarP(&globalCmd.flagLogVerbose, "verbose", "v", false, "Show all information messages")
	app.PersistentFlags().StringVar(&globalCmd.flagLogPath, "log-file", "", "Write debug log to this path instead of discarding it")

	exitCode := 0
	app.RunE = func(cmd *cobra.Command, args []string) error {
		exitCode = repl.Run(globalCmd.logger())
		return nil
	}

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zsh0: "+err.Error())
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// runWorker is the worker-side half of the re-exec dispatch: it
// resets SIGTTIN/SIGTTOU to their default disposition (signal.Ignore's
// SIG_IGN survives exec, so a worker that never resets it could never
// be stopped by the terminal driver when it reads/writes as a
// background process) and runs exactly one utility command, printing
// its output and mapping its error to an exit code.
func runWorker(args []string) int {
	signal.Reset(unix.SIGTTIN, unix.SIGTTOU)

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "zsh0: missing worker command")
		return 1
	}

	output, err := builtin.RunWorker(args[0], args)
	if output != "" {
		fmt.Print(output)
	}
	if err != nil {
		ansi.PrintRedErrorln(ansi.Stdout(), args[0]+": "+err.Error())
		return 1
	}
	return 0
}

func (c *cmdGlobal) logger() *shelllog.Logger {
	if c.flagLogPath == "" {
		return shelllog.Discard()
	}

	log, err := shelllog.Open(c.flagLogPath)
	if err != nil {
		ansi.PrintRedErrorln(ansi.Stdout(), "zsh0: failed to open log file: "+err.Error())
		return shelllog.Discard()
	}

	switch {
	case c.flagLogDebug:
		log.SetLevel(logrus.DebugLevel)
	case c.flagLogVerbose:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
