package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsOutputPiped reports whether stdout is connected to a pipe or file rather
// than a terminal. Piped output defaults to JSON for scripts; terminals get
// YAML.
func IsOutputPiped() bool {
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
