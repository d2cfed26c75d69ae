package provenance

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/utils"
)

// gitInfoScript prints the short hash, long hash, commit time, origin URL and author of HEAD on a single line.
const gitInfoScript = `echo "$(git rev-parse --short HEAD) $(git rev-parse HEAD) $(git show -s --format=%ct) $(git config --get remote.origin.url) $(git log -1 --pretty=format:'%an')"`

// CommandFactory creates the command that prints the five provenance fields for the repository at repoRoot.
type CommandFactory func(ctx context.Context, repoRoot string) *exec.Cmd

// ExecSource obtains commit information by invoking the git binary.
type ExecSource struct {
	command CommandFactory
}

// NewExecSource creates an ExecSource using the platform-appropriate git invocation.
func NewExecSource() *ExecSource {
	return NewExecSourceWithCommand(defaultGitCommand)
}

// NewExecSourceWithCommand creates an ExecSource that runs commands produced by the given factory.
func NewExecSourceWithCommand(command CommandFactory) *ExecSource {
	return &ExecSource{command: command}
}

// defaultGitCommand returns the git invocation for the current platform. Windows checkouts ship a helper script
// producing the same single line of output.
func defaultGitCommand(ctx context.Context, repoRoot string) *exec.Cmd {
	var cmd *exec.Cmd
	if utils.IsWindowsEnvironment() {
		cmd = exec.CommandContext(ctx, "cmd", "/C", filepath.Join(repoRoot, "scripts", "windows", "git-info.cmd"))
	} else {
		cmd = exec.CommandContext(ctx, "bash", "-c", gitInfoScript)
	}
	cmd.Dir = repoRoot
	return cmd
}

// Query runs the provenance command and parses its output.
func (s *ExecSource) Query(ctx context.Context, repoRoot string) (*CommitInfo, error) {
	cmd := s.command(ctx, repoRoot)
	output, err := utils.RunCommand(cmd)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrapf(ctxErr, "provenance query in %s did not finish", repoRoot)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrNotAGitCheckout, "provenance query failed: %v\n%s", err, output.Summary())
	}
	return ParseCommitInfo(string(output.Stdout))
}
