package versioning

import "github.com/pkg/errors"

var (
	// ErrInvalidVersionFormat indicates that a packed version could not be parsed as a hexadecimal or decimal integer.
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrUnstableRelease indicates that a packed version does not carry the release status nibble.
	ErrUnstableRelease = errors.New("unstable release")

	// ErrVersionNotFound indicates that a version declaration could not be located in a source file.
	ErrVersionNotFound = errors.New("version not found")

	// ErrInvalidBuildClock indicates that the build time precedes the version creation time.
	ErrInvalidBuildClock = errors.New("invalid build clock")
)
