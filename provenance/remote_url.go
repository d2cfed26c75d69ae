package provenance

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// DefaultAllowedHosts lists the code-hosting domains a fork may be hosted on by default.
var DefaultAllowedHosts = []string{"github.com"}

// NormalizeRemoteURL rewrites an SSH-style remote reference (user@host:path[.git]) into its browsable HTTPS form
// (https://host/path). Any other remote URL is returned unchanged.
func NormalizeRemoteURL(remote string) string {
	remote = strings.TrimSpace(remote)

	// URLs with a scheme (https://, ssh://, file://) are passed through.
	if strings.Contains(remote, "://") {
		return remote
	}

	at := strings.Index(remote, "@")
	if at <= 0 {
		return remote
	}
	colon := strings.Index(remote[at+1:], ":")
	if colon <= 0 {
		return remote
	}

	host := remote[at+1 : at+1+colon]
	path := strings.TrimSuffix(remote[at+1+colon+1:], ".git")
	path = strings.TrimPrefix(path, "/")
	return "https://" + host + "/" + path
}

// ValidateRemoteHost verifies that the host of a normalized remote URL is one of the allowed hosts.
// Returns ErrUnsupportedHost otherwise.
func ValidateRemoteHost(remote string, allowedHosts []string) error {
	parsed, err := url.Parse(remote)
	if err != nil || parsed.Host == "" {
		return errors.Wrapf(ErrUnsupportedHost, "could not determine host of remote %q", remote)
	}

	host := strings.ToLower(parsed.Hostname())
	allowed := slices.ContainsFunc(allowedHosts, func(allowedHost string) bool {
		return strings.EqualFold(allowedHost, host)
	})
	if !allowed {
		return errors.Wrapf(ErrUnsupportedHost, "remote %q is hosted on %s, allowed hosts: %s",
			remote, host, strings.Join(allowedHosts, ", "))
	}
	return nil
}
