package provenance

import (
	"context"
	"strconv"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

// shortHashLength matches the default abbreviation used by `git rev-parse --short`.
const shortHashLength = 7

// GoGitSource obtains commit information by reading the repository in-process, without a git binary.
type GoGitSource struct{}

// NewGoGitSource creates a GoGitSource.
func NewGoGitSource() *GoGitSource {
	return &GoGitSource{}
}

// Query opens the repository at repoRoot and reads the HEAD commit and the origin remote.
func (s *GoGitSource) Query(ctx context.Context, repoRoot string) (*CommitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "could not open %s: %v", repoRoot, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "could not resolve HEAD: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "could not read HEAD commit: %v", err)
	}

	origin, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "could not read remote %q: %v", git.DefaultRemoteName, err)
	}
	urls := origin.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "remote %q has no URL", git.DefaultRemoteName)
	}

	longHash := commit.Hash.String()
	return newCommitInfo(
		longHash[:shortHashLength],
		longHash,
		strconv.FormatInt(commit.Committer.When.Unix(), 10),
		urls[0],
		commit.Author.Name,
	)
}
