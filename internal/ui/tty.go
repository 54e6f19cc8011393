package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY returns true if w is a terminal.
func IsTTY(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled reports whether output to w should be colored: the config
// allows it and w is a terminal.
func ColorEnabled(configured bool, w io.Writer) bool {
	return configured && IsTTY(w)
}

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return IsTTY(os.Stdin) && IsTTY(os.Stdout)
}
