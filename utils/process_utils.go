package utils

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// CommandOutput holds everything a finished command wrote.
type CommandOutput struct {
	// Stdout is what the command wrote to standard output.
	Stdout []byte

	// Stderr is what the command wrote to standard error.
	Stderr []byte

	// Combined interleaves both streams in the order they were written.
	Combined []byte

	// ExitCode is the exit status of the command, or -1 if it did not exit normally.
	ExitCode int
}

// Summary returns the trimmed combined output, for inclusion in error messages.
func (o *CommandOutput) Summary() string {
	return strings.TrimSpace(string(o.Combined))
}

// RunCommand runs a given exec.Cmd, capturing its output. The output is returned even if the command fails, in which
// case the error carries the command line.
func RunCommand(command *exec.Cmd) (*CommandOutput, error) {
	// Create our buffers to capture output and errors.
	var bStdout, bStderr, bCombined bytes.Buffer

	// Create a synchronized writer over bCombined to avoid data race.
	var combinedWriter io.Writer = &synchronizedWriter{writer: &bCombined}

	// Create multi writers to capture output into individual and combined buffers
	command.Stdout = io.MultiWriter(&bStdout, combinedWriter)
	command.Stderr = io.MultiWriter(&bStderr, combinedWriter)

	err := command.Run()
	output := &CommandOutput{
		Stdout:   bStdout.Bytes(),
		Stderr:   bStderr.Bytes(),
		Combined: bCombined.Bytes(),
		ExitCode: -1,
	}
	if command.ProcessState != nil {
		output.ExitCode = command.ProcessState.ExitCode()
	}
	if err != nil {
		return output, errors.Wrapf(err, "%s", strings.Join(command.Args, " "))
	}
	return output, nil
}

// WithOptionalTimeout derives a context bounded by the given timeout. A non-positive timeout leaves the parent
// context unbounded. The returned cancel function must always be called.
func WithOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// IsWindowsEnvironment returns a boolean indicating whether the current execution environment is a Windows platform.
func IsWindowsEnvironment() bool {
	return runtime.GOOS == "windows"
}

// synchronizedWriter wraps an io.Writer to avoid a data race when writing.
type synchronizedWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

func (s *synchronizedWriter) Write(p []byte) (n int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writer.Write(p)
}
