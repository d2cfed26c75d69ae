package colors

import "os"

// init enables ANSI coloring for terminals, unless NO_COLOR is set.
func init() {
	if _, ok := os.LookupEnv(NoColorEnv); ok {
		return
	}
	EnableColor()
}
