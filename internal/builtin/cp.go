package builtin

import (
	"io"
	"os"
	"path/filepath"

	"github.com/zsh0/zsh0/internal/shellerr"
)

const cpUsage = "usage: source_file target_file\n\tsource_file ... target_directory"

// cp copies one or more source files to a destination file or, when
// there are multiple sources, an existing destination directory —
// grounded on cp.rs.
func cp(args []string) (string, error) {
	if len(args) < 3 {
		return "", shellerr.Usage("not enough arguments", cpUsage)
	}

	sources := args[1 : len(args)-1]
	dest := args[len(args)-1]

	destInfo, destErr := os.Stat(dest)
	destIsDir := destErr == nil && destInfo.IsDir()

	if len(sources) > 1 && !destIsDir {
		return "", shellerr.Usage("target must be an existing directory when copying multiple sources", cpUsage)
	}

	for _, src := range sources {
		srcInfo, err := os.Stat(src)
		if err == nil && srcInfo.IsDir() {
			return "", shellerr.Newf(shellerr.ArgUsage, "%s is a directory (not copied)", src)
		}

		destFile := dest
		if destIsDir {
			destFile = filepath.Join(dest, filepath.Base(src))
		}

		if err := copyFile(src, destFile); err != nil {
			return "", shellerr.FromSyscall(err)
		}
	}

	return "", nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
