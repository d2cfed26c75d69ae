package provenance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotAGitCheckout indicates that commit information could not be obtained, typically because the sources were
	// not fetched from a git repository.
	ErrNotAGitCheckout = errors.New("source code must be fetched from git repository")

	// ErrUnsupportedHost indicates that the remote repository is not hosted on an allowed code-hosting domain.
	ErrUnsupportedHost = errors.New("unsupported remote host")
)

var (
	shortHashRegex = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
	longHashRegex  = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// commitInfoFieldCount is the number of fields a provenance query yields.
const commitInfoFieldCount = 5

// CommitInfo describes the provenance of the sources being built.
type CommitInfo struct {
	// ShortHash is the abbreviated hash of the HEAD commit.
	ShortHash string `json:"commit"`

	// LongHash is the full hash of the HEAD commit.
	LongHash string `json:"commitFull"`

	// Timestamp is the commit time of the HEAD commit, in unix seconds.
	Timestamp int64 `json:"commitDate"`

	// RemoteURL is the browsable (normalized) URL of the origin remote.
	RemoteURL string `json:"remoteUrl"`

	// Author is the author name of the HEAD commit.
	Author string `json:"author"`
}

// CommitURL returns a browsable URL to the tree of the commit.
func (c *CommitInfo) CommitURL() string {
	return c.RemoteURL + "/tree/" + c.LongHash
}

// PullRequestURL returns a browsable URL to the files of a pull request at a given commit.
func (c *CommitInfo) PullRequestURL(id int64, commitLong string) string {
	return c.RemoteURL + "/pull/" + strconv.FormatInt(id, 10) + "/files/" + commitLong
}

// ParseCommitInfo parses the combined output of a provenance query. The output consists of the short hash, long
// hash, commit time, remote URL and author name separated by spaces; the author name may itself contain spaces.
// The remote URL in the returned CommitInfo is not yet normalized.
func ParseCommitInfo(output string) (*CommitInfo, error) {
	fields := strings.SplitN(strings.TrimSpace(output), " ", commitInfoFieldCount)
	if len(fields) != commitInfoFieldCount {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "expected %d fields, got %d", commitInfoFieldCount, len(fields))
	}
	for i, field := range fields {
		if strings.TrimSpace(field) == "" {
			return nil, errors.Wrapf(ErrNotAGitCheckout, "field %d is empty", i)
		}
	}

	return newCommitInfo(fields[0], fields[1], fields[2], fields[3], fields[4])
}

// newCommitInfo validates the raw provenance fields and constructs a CommitInfo from them.
func newCommitInfo(shortHash string, longHash string, timestamp string, remoteURL string, author string) (*CommitInfo, error) {
	if !shortHashRegex.MatchString(shortHash) {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "malformed short commit hash %q", shortHash)
	}
	if !longHashRegex.MatchString(longHash) {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "malformed commit hash %q", longHash)
	}
	if !strings.HasPrefix(longHash, shortHash) {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "short hash %q does not abbreviate %q", shortHash, longHash)
	}

	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "malformed commit time %q", timestamp)
	}

	return &CommitInfo{
		ShortHash: shortHash,
		LongHash:  longHash,
		Timestamp: seconds,
		RemoteURL: remoteURL,
		Author:    strings.TrimSpace(author),
	}, nil
}
