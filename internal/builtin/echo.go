package builtin

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/zsh0/zsh0/internal/config"
	"github.com/zsh0/zsh0/internal/redirect"
	"github.com/zsh0/zsh0/internal/shellerr"
)

// echo prints its arguments space-joined, halving backslash runs and
// JSON-unescaping the result (so a single `\n` becomes a real newline
// inside quotes, while outside them its backslash is dropped and only
// `n` remains — see processBackslashes),
// then expands the fixed set of environment variables from
// config.EchoEnvVars. Grounded byte-for-byte on echo.rs.
func echo(args []string) (string, error) {
	fsArgs, targets := redirect.Classify(args)

	if len(fsArgs) < 2 {
		return emitEcho("\n", targets)
	}

	var b strings.Builder
	for i, arg := range fsArgs[1:] {
		if i > 0 {
			b.WriteByte(' ')
		}

		if len(arg) > 1 && ((strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`)) ||
			(strings.HasPrefix(arg, "'") && strings.HasSuffix(arg, "'"))) {
			b.WriteString(processBackslashes(arg[1:len(arg)-1], 1))
		} else {
			b.WriteString(processBackslashes(arg, 0))
		}
	}

	unescaped, err := jsonUnescape(b.String())
	if err != nil {
		return "", shellerr.New(shellerr.ArgUsage, shellerr.StripOSSuffix(err.Error()))
	}

	unescaped = expandEchoEnv(unescaped)
	unescaped += "\n"

	return emitEcho(unescaped, targets)
}

// processBackslashes halves runs of backslashes (plus an extra virtual
// one when the argument came from inside quotes), exactly as echo.rs's
// process_backslashes: a run of n backslashes followed by another
// character collapses to (n+plus)/2 backslashes, rounding down; a run
// at the very end of s collapses to (n+1)/2 whatever plus is.
func processBackslashes(s string, plus int) string {
	var result strings.Builder
	count := 0

	for _, c := range s {
		if c == '\\' {
			count++
			continue
		}
		if count > 0 {
			result.WriteString(strings.Repeat(`\`, (count+plus)/2))
			count = 0
		}
		result.WriteRune(c)
	}
	if count > 0 {
		result.WriteString(strings.Repeat(`\`, (count+1)/2))
	}

	return result.String()
}

// jsonUnescape interprets the collapsed-backslash string as the body
// of a JSON string literal, the same trick echo.rs plays with
// serde_json::de::from_str to turn `\n`/`\t`/etc. into real control
// characters without hand-rolling an unescaper.
func jsonUnescape(s string) (string, error) {
	var out string
	err := json.Unmarshal([]byte(`"`+s+`"`), &out)
	if err != nil {
		return "", err
	}
	return out, nil
}

func expandEchoEnv(s string) string {
	for _, name := range config.EchoEnvVars {
		s = strings.ReplaceAll(s, "$"+name, os.Getenv(name))
	}
	return s
}

func emitEcho(output string, targets []redirect.Target) (string, error) {
	if len(targets) == 0 {
		return output, nil
	}
	for _, t := range targets {
		if err := writeRedirectTarget(t, output); err != nil {
			return "", err
		}
	}
	return "", nil
}

func writeRedirectTarget(t redirect.Target, content string) error {
	flags := os.O_WRONLY | os.O_CREATE
	if t.Op == ">>" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(t.Path, flags, 0o644)
	if err != nil {
		return shellerr.FromSyscall(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return shellerr.FromSyscall(err)
	}
	return nil
}
