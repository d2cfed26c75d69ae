package versioning

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SourceDateEpochEnv is the environment variable consulted for a reproducible build time.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

// MonthsBetween returns the number of calendar months elapsed between reference and now, with both times
// interpreted in UTC. The result never goes negative.
func MonthsBetween(reference time.Time, now time.Time) int {
	reference = reference.UTC()
	now = now.UTC()

	months := (now.Year()-reference.Year())*12 + int(now.Month()) - int(reference.Month())
	if months < 0 {
		return 0
	}
	return months
}

// MinorVersion derives the minor version from the elapsed months between the version creation time and the build
// time. Returns ErrInvalidBuildClock if the build time precedes the creation time.
func MinorVersion(creation time.Time, buildTime time.Time) (int, error) {
	if buildTime.Before(creation) {
		return 0, errors.Wrapf(ErrInvalidBuildClock, "build time %s precedes version creation time %s",
			buildTime.UTC().Format(time.RFC3339), creation.UTC().Format(time.RFC3339))
	}
	return MonthsBetween(creation, buildTime), nil
}

// BuildTime resolves the time the build is stamped with. An explicit override (unix seconds) wins, followed by the
// SOURCE_DATE_EPOCH environment variable, followed by the wall clock.
func BuildTime(overrideSeconds int64) (time.Time, error) {
	if overrideSeconds > 0 {
		return time.Unix(overrideSeconds, 0).UTC(), nil
	}

	if epoch := strings.TrimSpace(os.Getenv(SourceDateEpochEnv)); epoch != "" {
		seconds, err := strconv.ParseInt(epoch, 10, 64)
		if err != nil {
			return time.Time{}, errors.Wrapf(ErrInvalidBuildClock, "could not parse %s=%q", SourceDateEpochEnv, epoch)
		}
		return time.Unix(seconds, 0).UTC(), nil
	}

	return time.Now().UTC(), nil
}
