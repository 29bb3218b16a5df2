package builtin

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/zsh0/zsh0/internal/ansi"
	"github.com/zsh0/zsh0/internal/shellerr"
)

// ls lists the current directory's non-hidden entries in a column
// grid sized to the terminal width, coloring directories blue on a
// TTY, grounded on ls.rs.
func ls(_ []string) (string, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return "", shellerr.New(shellerr.Syscall, "ls: cannot open directory '.': permission denied")
	}

	type entry struct {
		name  string
		isDir bool
	}
	var visible []entry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		visible = append(visible, entry{name: e.Name(), isDir: e.IsDir()})
	}
	if len(visible) == 0 {
		return "", nil
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].name < visible[j].name })

	maxLen := 0
	for _, e := range visible {
		if len(e.name) > maxLen {
			maxLen = len(e.name)
		}
	}
	colWidth := maxLen + 6

	termWidth := terminalWidth()
	numCols := termWidth / colWidth
	if numCols < 1 {
		numCols = 1
	}
	numRows := (len(visible) + numCols - 1) / numCols

	var b strings.Builder
	for row := 0; row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			idx := row + col*numRows
			if idx < len(visible) {
				e := visible[idx]
				display := e.name
				if e.isDir {
					display = ansi.Blue(e.name)
				}
				pad := colWidth - len(e.name)
				if pad < 0 {
					pad = 0
				}
				b.WriteString(display)
				b.WriteString(strings.Repeat(" ", pad))
			} else {
				b.WriteString(strings.Repeat(" ", colWidth))
			}
		}
		if row < numRows-1 {
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
