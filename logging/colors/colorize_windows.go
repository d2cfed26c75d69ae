//go:build windows

package colors

import (
	"golang.org/x/sys/windows"
)

// EnableColor will ask the console whether virtual terminal processing (ANSI escape codes) is available on stdout,
// and try to turn it on if it is not.
func EnableColor() {
	if !stdoutIsTerminal() {
		enabled = false
		return
	}
	handle := windows.Handle(windows.Stdout)

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		enabled = false
		return
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		enabled = true
		return
	}
	enabled = windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
