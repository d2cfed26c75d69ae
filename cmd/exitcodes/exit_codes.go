package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeHandledError indicates that there was an error that was logged already and does not need to be handled
	// by main.
	ExitCodeHandledError = 6

	// ExitCodeBuildConfigError indicates that the build metadata could not be derived from the project inputs, for
	// example missing credentials, an unstable OpenSSL release or a checkout that is not a git repository. The error
	// has already been logged.
	ExitCodeBuildConfigError = 7
)

// IsLogged reports whether errors carrying the given exit code were already logged before reaching main.
func IsLogged(exitCode int) bool {
	return exitCode == ExitCodeHandledError || exitCode == ExitCodeBuildConfigError
}
