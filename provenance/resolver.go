package provenance

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/logging"
	"github.com/tgx-android/tgxmeta/logging/colors"
	"github.com/tgx-android/tgxmeta/utils"
)

// Backend describes how commit information is obtained from a repository.
type Backend string

const (
	// BackendExec invokes the git binary.
	BackendExec Backend = "exec"

	// BackendGoGit reads the repository in-process.
	BackendGoGit Backend = "go-git"
)

// SupportedBackends lists every Backend a Resolver can be created with.
var SupportedBackends = []Backend{BackendExec, BackendGoGit}

// Source obtains the raw (non-normalized) commit information of the HEAD commit of a repository.
type Source interface {
	Query(ctx context.Context, repoRoot string) (*CommitInfo, error)
}

// Resolver resolves, normalizes and validates the provenance of a source tree.
type Resolver struct {
	// source describes where raw commit information is obtained from.
	source Source

	// allowedHosts describes the code-hosting domains the normalized remote URL may point to.
	allowedHosts []string

	// timeout bounds the provenance query. A non-positive timeout means no bound.
	timeout time.Duration

	logger *logging.Logger
}

// NewResolver creates a Resolver for the given backend.
func NewResolver(backend Backend, allowedHosts []string, timeout time.Duration) (*Resolver, error) {
	var source Source
	switch backend {
	case BackendExec, "":
		source = NewExecSource()
	case BackendGoGit:
		source = NewGoGitSource()
	default:
		return nil, errors.Errorf("unsupported provenance backend %q", backend)
	}
	return NewResolverWithSource(source, allowedHosts, timeout), nil
}

// NewResolverWithSource creates a Resolver that queries the provided Source.
func NewResolverWithSource(source Source, allowedHosts []string, timeout time.Duration) *Resolver {
	if len(allowedHosts) == 0 {
		allowedHosts = DefaultAllowedHosts
	}
	return &Resolver{
		source:       source,
		allowedHosts: allowedHosts,
		timeout:      timeout,
		logger:       logging.GlobalLogger.NewSubLogger("module", logging.PROVENANCE_SERVICE),
	}
}

// Resolve obtains the commit information for the repository at repoRoot, normalizes its remote URL and verifies
// that the remote is hosted on an allowed domain.
func (r *Resolver) Resolve(ctx context.Context, repoRoot string) (*CommitInfo, error) {
	ctx, cancel := utils.WithOptionalTimeout(ctx, r.timeout)
	defer cancel()

	info, err := r.source.Query(ctx, repoRoot)
	if err != nil {
		return nil, err
	}

	remote := info.RemoteURL
	info.RemoteURL = NormalizeRemoteURL(remote)
	if info.RemoteURL != remote {
		r.logger.Debug("Normalized remote ", remote, " to ", info.RemoteURL)
	}

	if err = ValidateRemoteHost(info.RemoteURL, r.allowedHosts); err != nil {
		return nil, err
	}

	r.logger.Info("Building from commit ", colors.Bold, info.ShortHash, colors.Reset, " of ", info.RemoteURL)
	return info, nil
}
