package versioning

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestMonthsBetween tests the elapsed month computation across month and year boundaries.
func TestMonthsBetween(t *testing.T) {
	testCases := []struct {
		reference time.Time
		now       time.Time
		expected  int
	}{
		{date(2020, time.January, 15), date(2020, time.March, 1), 2},
		{date(2020, time.January, 15), date(2020, time.January, 31), 0},
		{date(2020, time.December, 31), date(2021, time.January, 1), 1},
		{date(2014, time.June, 1), date(2024, time.June, 1), 120},
		{date(2020, time.March, 1), date(2020, time.January, 1), 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, MonthsBetween(tc.reference, tc.now), "%s -> %s", tc.reference, tc.now)
	}
}

// TestMonthsBetweenUsesUTC ensures that local offsets do not shift the month boundary.
func TestMonthsBetweenUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2020-02-01 02:00 JST is still January in UTC.
	now := time.Date(2020, time.February, 1, 2, 0, 0, 0, tokyo)
	assert.Equal(t, 0, MonthsBetween(date(2020, time.January, 1), now))
}

// TestMinorVersionRejectsClockRegression ensures a build time preceding the creation time fails.
func TestMinorVersionRejectsClockRegression(t *testing.T) {
	_, err := MinorVersion(date(2020, time.March, 1), date(2020, time.January, 1))
	assert.True(t, errors.Is(err, ErrInvalidBuildClock))

	minor, err := MinorVersion(date(2020, time.January, 15), date(2020, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, minor)
}

// TestBuildTime tests the precedence of the build time sources.
func TestBuildTime(t *testing.T) {
	t.Setenv(SourceDateEpochEnv, "1600000000")

	buildTime, err := BuildTime(1700000000)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), buildTime.Unix())

	buildTime, err = BuildTime(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1600000000), buildTime.Unix())

	t.Setenv(SourceDateEpochEnv, "yesterday")
	_, err = BuildTime(0)
	assert.True(t, errors.Is(err, ErrInvalidBuildClock))
}
