package builtin

import (
	"os"
	"path/filepath"

	"github.com/zsh0/zsh0/internal/shellerr"
)

const mvUsage = "usage: source_file target_directory\n\tsource_file target_directory/new_name\n\tsource_file new_name"

// mv renames source into target, or into target/basename(source) when
// target is an existing directory — grounded on mv.rs.
func mv(args []string) (string, error) {
	if len(args) < 3 {
		return "", shellerr.Usage("not enough arguments", mvUsage)
	}

	source := args[1]
	target := args[2]

	srcInfo, err := os.Stat(source)
	if err == nil && srcInfo.IsDir() {
		return "", shellerr.Newf(shellerr.ArgUsage, "%s is a directory (not moved)", source)
	}

	dest := target
	if destInfo, derr := os.Stat(target); derr == nil && destInfo.IsDir() {
		dest = filepath.Join(target, filepath.Base(source))
	}

	if err := os.Rename(source, dest); err != nil {
		return "", shellerr.FromSyscall(err)
	}
	return "", nil
}
