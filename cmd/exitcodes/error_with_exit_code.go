package exitcodes

import "github.com/pkg/errors"

// ErrorWithExitCode carries the exit code the process should terminate with alongside the error that caused it.
type ErrorWithExitCode struct {
	err      error
	exitCode int
}

// NewErrorWithExitCode attaches an exit code to err.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{err: err, exitCode: exitCode}
}

// Error implements the error interface. A nil inner error yields an empty message.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap returns the inner error so that sentinel checks see through the exit code.
func (e *ErrorWithExitCode) Unwrap() error {
	return e.err
}

// GetInnerErrorAndExitCode resolves the error reaching main into the error to report and the process exit code.
// A nil error exits with ExitCodeSuccess and an error without an attached code exits with ExitCodeGeneralError. An
// ErrorWithExitCode anywhere in the chain, including one wrapped with additional context, supplies its own code and
// inner error.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	}

	var withCode *ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.err, withCode.exitCode
	}
	return err, ExitCodeGeneralError
}
