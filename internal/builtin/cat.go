package builtin

import (
	"os"
	"strings"

	"github.com/zsh0/zsh0/internal/redirect"
	"github.com/zsh0/zsh0/internal/shellerr"
)

const catUsage = "Usage:\tcat [FILE]..."

// cat concatenates its source files (or, with none, stdin) and either
// prints or redirects the result, grounded on cat.rs.
func cat(args []string) (string, error) {
	sources, targets := redirect.Classify(args)

	var contents string
	var errs []string
	if len(sources) < 2 {
		stdin, err := readAllStdin()
		if err != nil {
			return "", shellerr.Newf(shellerr.Syscall, "cat: %s", shellerr.StripOSSuffix(err.Error()))
		}
		contents = stdin
	} else {
		contents, errs = assembleContents(sources[1:])
	}

	if len(targets) == 0 {
		if len(errs) == 0 {
			return contents, nil
		}
		return "", shellerr.New(shellerr.ArgUsage, strings.Join(errs, "\n"))
	}

	for _, t := range targets {
		if fi, statErr := os.Stat(t.Path); statErr == nil && fi.IsDir() {
			errs = append(errs, "0-shell: Is a directory: "+t.Path)
			continue
		}
		if err := writeRedirectTarget(t, contents); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return "", shellerr.New(shellerr.ArgUsage, strings.Join(errs, "\n"))
	}
	return "", nil
}

func assembleContents(sources []string) (string, []string) {
	var b strings.Builder
	var errs []string

	for _, path := range sources {
		fi, statErr := os.Stat(path)
		if statErr != nil {
			errs = append(errs, "cat: "+path+": No such file or directory")
			continue
		}
		if fi.IsDir() {
			errs = append(errs, "cat: "+path+": Is a directory")
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, "cat: "+path+": "+shellerr.StripOSSuffix(err.Error()))
			continue
		}
		b.Write(data)
	}

	return b.String(), errs
}

func readAllStdin() (string, error) {
	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return b.String(), nil
}
