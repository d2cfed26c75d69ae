package colors

import (
	"fmt"
	"os"
)

// NoColorEnv is the environment variable that, when set to any value, disables colored output.
const NoColorEnv = "NO_COLOR"

// enabled describes whether ANSI escape codes are emitted.
var enabled bool

// Enabled reports whether ColorFuncs currently emit ANSI escape codes.
func Enabled() bool {
	return enabled
}

// DisableColor turns off ANSI escape codes for every ColorFunc.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c, or s itself if coloring is disabled.
// Source: https://github.com/rs/zerolog/blob/4fff5db29c3403bc26dee9895e12a108aacc0203/console.go
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// stdoutIsTerminal reports whether stdout is attached to a character device. Build logs captured by Gradle are not.
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
