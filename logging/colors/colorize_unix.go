//go:build !windows

package colors

// EnableColor turns on ANSI escape codes when stdout is a terminal.
func EnableColor() {
	enabled = stdoutIsTerminal()
}
