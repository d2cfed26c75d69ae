package provenance

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLongHash = "0123456789abcdef0123456789abcdef01234567"

// TestParseCommitInfo ensures well-formed provenance output is split into its five fields, keeping spaces in the
// author name.
func TestParseCommitInfo(t *testing.T) {
	info, err := ParseCommitInfo("0123456 " + testLongHash + " 1700000000 https://github.com/org/repo Jane Q. Doe\n")
	require.NoError(t, err)

	assert.Equal(t, "0123456", info.ShortHash)
	assert.Equal(t, testLongHash, info.LongHash)
	assert.EqualValues(t, 1700000000, info.Timestamp)
	assert.Equal(t, "https://github.com/org/repo", info.RemoteURL)
	assert.Equal(t, "Jane Q. Doe", info.Author)
	assert.Equal(t, "https://github.com/org/repo/tree/"+testLongHash, info.CommitURL())
	assert.Equal(t, "https://github.com/org/repo/pull/42/files/"+testLongHash, info.PullRequestURL(42, testLongHash))
}

// TestParseCommitInfoRejectsMalformedOutput ensures every malformed output maps onto ErrNotAGitCheckout.
func TestParseCommitInfoRejectsMalformedOutput(t *testing.T) {
	tests := map[string]string{
		"empty":             "",
		"too few fields":    "0123456 " + testLongHash + " 1700000000",
		"missing remote":    "0123456 " + testLongHash + " 1700000000  Jane",
		"non-hex short":     "xyz1234 " + testLongHash + " 1700000000 https://github.com/o/r Jane",
		"short long hash":   "0123456 0123456789 1700000000 https://github.com/o/r Jane",
		"mismatched prefix": "abcdef0 " + testLongHash + " 1700000000 https://github.com/o/r Jane",
		"bad timestamp":     "0123456 " + testLongHash + " yesterday https://github.com/o/r Jane",
		"fatal output":      "fatal: not a git repository (or any of the parent directories): .git",
	}

	for name, output := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCommitInfo(output)
			assert.True(t, errors.Is(err, ErrNotAGitCheckout), "unexpected error: %v", err)
		})
	}
}

// TestNormalizeRemoteURL ensures SSH-style remotes are rewritten into browsable HTTPS URLs and that anything else
// passes through untouched.
func TestNormalizeRemoteURL(t *testing.T) {
	tests := map[string]string{
		"git@github.com:user/repo.git":         "https://github.com/user/repo",
		"git@github.com:user/repo":             "https://github.com/user/repo",
		"git@github.com:/user/repo.git":        "https://github.com/user/repo",
		"https://github.com/user/repo":         "https://github.com/user/repo",
		"https://github.com/user/repo.git":     "https://github.com/user/repo.git",
		"ssh://git@github.com/user/repo.git":   "ssh://git@github.com/user/repo.git",
		"  git@gitlab.com:group/sub/repo.git ": "https://gitlab.com/group/sub/repo",
		"/local/path/repo":                     "/local/path/repo",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeRemoteURL(input), input)
	}
}

// TestValidateRemoteHost ensures the host allow-list is enforced case-insensitively.
func TestValidateRemoteHost(t *testing.T) {
	assert.NoError(t, ValidateRemoteHost("https://github.com/user/repo", DefaultAllowedHosts))
	assert.NoError(t, ValidateRemoteHost("https://GitHub.com/user/repo", DefaultAllowedHosts))
	assert.NoError(t, ValidateRemoteHost("https://gitlab.com/user/repo", []string{"github.com", "gitlab.com"}))

	err := ValidateRemoteHost("https://gitlab.com/user/repo", DefaultAllowedHosts)
	assert.True(t, errors.Is(err, ErrUnsupportedHost))

	err = ValidateRemoteHost("/local/path/repo", DefaultAllowedHosts)
	assert.True(t, errors.Is(err, ErrUnsupportedHost))
}
