// Package repl implements the shell's read-evaluate-print loop,
// wiring together the line editor, tokenizer, redirect classifier,
// dispatcher, launcher, job table, and signal dispatcher — spec.md
// section 4 end-to-end.
package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zsh0/zsh0/internal/ansi"
	"github.com/zsh0/zsh0/internal/builtin"
	"github.com/zsh0/zsh0/internal/job"
	"github.com/zsh0/zsh0/internal/launcher"
	"github.com/zsh0/zsh0/internal/lineedit"
	"github.com/zsh0/zsh0/internal/redirect"
	"github.com/zsh0/zsh0/internal/shellerr"
	"github.com/zsh0/zsh0/internal/shelllog"
	"github.com/zsh0/zsh0/internal/sigdispatch"
	"github.com/zsh0/zsh0/internal/token"
)

// Run drives the shell until exit, returning the process exit code.
func Run(log *shelllog.Logger) int {
	table := job.NewTable()
	dispatcher := sigdispatch.Install(log)

	lnch, err := launcher.New(table, dispatcher)
	if err != nil {
		ansi.PrintRedErrorln(ansi.Stdout(), "0-shell: "+err.Error())
		return 1
	}

	env := &builtin.Env{Table: table, Dispatcher: dispatcher, Launcher: lnch}
	editor := lineedit.New()

	fmt.Print(ansi.Bold())
	defer fmt.Print(ansi.Reset())

	finalStatus := 0

loop:
	for {
		for _, event := range job.Sweep(table) {
			fmt.Println(job.FormatEvent(event))
		}

		line, err := editor.ReadLine()
		if err != nil {
			switch {
			case errors.Is(err, lineedit.ErrEOF):
				if hasStoppedJob(table) && !env.ExitAttempted {
					ansi.PrintRedErrorln(ansi.Stdout(), "exit: There are stopped jobs.")
					env.ExitAttempted = true
					continue
				}
				break loop
			case errors.Is(err, lineedit.ErrInterrupted):
				continue
			default:
				log.Warn("failed to read input", map[string]any{"error": err})
				continue
			}
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens, err := token.Split(line)
		if err != nil {
			ansi.PrintRedErrorln(ansi.Stdout(), err.Error())
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		background := false
		if tokens[len(tokens)-1] == token.Background {
			background = true
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) == 0 {
			continue
		}

		args, _ := redirect.Classify(tokens)
		name := args[0]
		command := redirect.Reconstruct(tokens)

		output, cmdErr := dispatch(env, lnch, name, tokens, background, command)

		if cmdErr != nil {
			if errors.Is(cmdErr, builtin.ExitRequested) {
				break loop
			}
			printError(name, cmdErr)
			continue
		}
		if output != "" {
			fmt.Print(output)
		}
	}

	builtin.Shutdown(table)
	return finalStatus
}

func dispatch(env *builtin.Env, lnch *launcher.Launcher, name string, tokens []string, background bool, command string) (string, error) {
	switch {
	case builtin.IsStateModifying(name), builtin.IsJobAware(name):
		return env.Run(name, tokens)

	case builtin.IsWorker(name):
		if background {
			return lnch.LaunchBackground(tokens, command)
		}

		outcome, err := lnch.LaunchForeground(tokens, command)
		if err != nil {
			return "", err
		}
		if outcome.SigintNewline {
			fmt.Println()
		}
		if outcome.Stopped {
			fmt.Printf("\n[%d]+\tStopped\t\t%s\n", env.Table.Current, command)
		}
		return "", nil

	default:
		return "", shellerr.Newf(shellerr.CommandNotFound, "command not found: %s", name)
	}
}

func hasStoppedJob(t *job.Table) bool {
	for _, j := range t.Jobs() {
		if j.State == job.Stopped {
			return true
		}
	}
	return false
}

func printError(command string, err error) {
	msg := err.Error()
	if strings.HasPrefix(msg, "0-shell: ") {
		ansi.PrintRedErrorln(ansi.Stdout(), msg)
	} else {
		ansi.PrintRedErrorln(ansi.Stdout(), command+": "+msg)
	}
}
