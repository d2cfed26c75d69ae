package version

import (
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoShortAndString(t *testing.T) {
	info := Info{
		Version:       "0.1.0",
		GitCommit:     "0123456789abcdef",
		GitCommitTime: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		GitTreeDirty:  true,
		GoVersion:     "go1.23.3",
	}
	assert.Equal(t, "0.1.0+0123456-dirty", info.Short())

	s := info.String()
	assert.True(t, strings.HasPrefix(s, "tgxmeta version 0.1.0\n"))
	assert.Contains(t, s, "Commit:     0123456-dirty")
	assert.Contains(t, s, "Built:      2024-03-01 12:00:00 UTC")
	assert.Contains(t, s, "Go version: go1.23.3")

	// Existing build metadata is replaced by the commit
	info.Version = "v0.1.0+ci.42"
	assert.Equal(t, "0.1.0+0123456-dirty", info.Short())

	_, err := semver.NewVersion(info.Short())
	require.NoError(t, err)
}

func TestInfoWithoutVCS(t *testing.T) {
	info := Info{Version: "0.1.0", GoVersion: "go1.23.3"}
	assert.Equal(t, "0.1.0", info.Short())
	assert.NotContains(t, info.String(), "Commit:")
	assert.NotContains(t, info.String(), "Built:")

	info = Info{Version: "not-a-version", GitCommit: "0123456789abcdef"}
	assert.Equal(t, "not-a-version+0123456", info.Short())
}
