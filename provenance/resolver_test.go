package provenance

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgx-android/tgxmeta/utils"
)

// staticSource is a Source returning a fixed result.
type staticSource struct {
	info *CommitInfo
	err  error
}

func (s staticSource) Query(ctx context.Context, repoRoot string) (*CommitInfo, error) {
	if s.info == nil {
		return nil, s.err
	}
	info := *s.info
	return &info, s.err
}

// TestResolverNormalizesAndValidates ensures the resolver rewrites SSH remotes before enforcing the allow-list.
func TestResolverNormalizesAndValidates(t *testing.T) {
	source := staticSource{info: &CommitInfo{
		ShortHash: "0123456",
		LongHash:  testLongHash,
		Timestamp: 1700000000,
		RemoteURL: "git@github.com:user/repo.git",
		Author:    "Jane",
	}}

	info, err := NewResolverWithSource(source, nil, 0).Resolve(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/user/repo", info.RemoteURL)
	assert.Equal(t, "https://github.com/user/repo/tree/"+testLongHash, info.CommitURL())

	// The same remote is rejected once github.com is no longer allowed
	_, err = NewResolverWithSource(source, []string{"gitlab.com"}, 0).Resolve(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrUnsupportedHost))
}

// TestResolverPropagatesSourceErrors ensures source failures are surfaced untouched.
func TestResolverPropagatesSourceErrors(t *testing.T) {
	source := staticSource{err: errors.Wrap(ErrNotAGitCheckout, "no .git")}
	_, err := NewResolverWithSource(source, nil, 0).Resolve(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrNotAGitCheckout))
}

// TestNewResolverBackends ensures every supported backend can be constructed and unknown ones are rejected.
func TestNewResolverBackends(t *testing.T) {
	for _, backend := range SupportedBackends {
		resolver, err := NewResolver(backend, nil, time.Second)
		require.NoError(t, err)
		assert.NotNil(t, resolver.source)
		assert.Equal(t, DefaultAllowedHosts, resolver.allowedHosts)
	}

	_, err := NewResolver("svn", nil, 0)
	assert.Error(t, err)
}

// TestExecSource runs a stand-in command printing provenance output and ensures it is parsed.
func TestExecSource(t *testing.T) {
	if utils.IsWindowsEnvironment() {
		t.Skip("requires a POSIX shell")
	}

	output := "0123456 " + testLongHash + " 1700000000 git@github.com:user/repo.git Jane Doe"
	source := NewExecSourceWithCommand(func(ctx context.Context, repoRoot string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, "sh", "-c", "echo '"+output+"'")
		cmd.Dir = repoRoot
		return cmd
	})

	info, err := NewResolverWithSource(source, nil, 5*time.Second).Resolve(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/user/repo", info.RemoteURL)
	assert.Equal(t, "Jane Doe", info.Author)
	assert.EqualValues(t, 1700000000, info.Timestamp)
}

// TestExecSourceFailures ensures a failing command yields ErrNotAGitCheckout and a hung command is cut off by the
// resolver timeout.
func TestExecSourceFailures(t *testing.T) {
	if utils.IsWindowsEnvironment() {
		t.Skip("requires a POSIX shell")
	}

	failing := NewExecSourceWithCommand(func(ctx context.Context, repoRoot string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo 'fatal: not a git repository' >&2; exit 128")
	})
	_, err := NewResolverWithSource(failing, nil, 0).Resolve(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrNotAGitCheckout))

	hanging := NewExecSourceWithCommand(func(ctx context.Context, repoRoot string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "10")
	})
	start := time.Now()
	_, err = NewResolverWithSource(hanging, nil, 100*time.Millisecond).Resolve(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "unexpected error: %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// TestGoGitSource builds a throwaway repository and ensures the in-process backend reads it.
func TestGoGitSource(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("tgx\n"), 0644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	when := time.Unix(1700000000, 0)
	hash, err := worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Jane Doe", Email: "jane@example.org", When: when},
	})
	require.NoError(t, err)

	// Without a remote the checkout cannot be attributed
	_, err = NewGoGitSource().Query(context.Background(), dir)
	assert.True(t, errors.Is(err, ErrNotAGitCheckout))

	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:user/repo.git"}})
	require.NoError(t, err)

	resolver, err := NewResolver(BackendGoGit, nil, 0)
	require.NoError(t, err)
	info, err := resolver.Resolve(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, hash.String(), info.LongHash)
	assert.Equal(t, hash.String()[:7], info.ShortHash)
	assert.EqualValues(t, 1700000000, info.Timestamp)
	assert.Equal(t, "Jane Doe", info.Author)
	assert.Equal(t, "https://github.com/user/repo", info.RemoteURL)
}

// TestGoGitSourceOutsideRepository ensures a plain directory is reported as not being a checkout.
func TestGoGitSourceOutsideRepository(t *testing.T) {
	_, err := NewGoGitSource().Query(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrNotAGitCheckout))
}
