package core

import (
	"fmt"
	"net/url"
	"strings"
)

// defaultURLTemplates maps well-known forges to their commit page layout.
var defaultURLTemplates = map[string]string{
	"github.com":    "https://github.com/{owner}/{repo}/commit/{hash}",
	"gitlab.com":    "https://gitlab.com/{owner}/{repo}/-/commit/{hash}",
	"bitbucket.org": "https://bitbucket.org/{owner}/{repo}/commits/{hash}",
}

// ParseRemote parses a Git remote URL into host, owner and repository.
//
// Supported formats:
//   - "git@host:owner/repo.git"          → SCP-like SSH
//   - "ssh://git@host[:port]/owner/repo" → SSH URL
//   - "https://host/owner/repo[.git]"    → HTTP(S), credentials stripped
//   - "https://host/group/sub/repo"      → nested groups kept in Owner
func ParseRemote(remote string) (*ParsedRemote, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return nil, fmt.Errorf("empty remote")
	}

	if strings.Contains(remote, "://") {
		return parseURLRemote(remote)
	}

	// SCP-like: [user@]host:owner/repo.git
	if i := strings.Index(remote, ":"); i > 0 && !strings.HasPrefix(remote, "/") {
		host := remote[:i]
		if at := strings.LastIndex(host, "@"); at >= 0 {
			host = host[at+1:]
		}
		return splitRepoPath(host, remote[i+1:], remote)
	}

	return nil, fmt.Errorf("unrecognized remote format: %q", remote)
}

func parseURLRemote(remote string) (*ParsedRemote, error) {
	u, err := url.Parse(remote)
	if err != nil {
		return nil, fmt.Errorf("invalid remote URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git":
	default:
		return nil, fmt.Errorf("unsupported remote scheme %q", u.Scheme)
	}
	return splitRepoPath(u.Hostname(), u.Path, remote)
}

func splitRepoPath(host, path, original string) (*ParsedRemote, error) {
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	i := strings.LastIndex(path, "/")
	if host == "" || i <= 0 || i == len(path)-1 {
		return nil, fmt.Errorf("remote %q has no owner/repo path", original)
	}
	return &ParsedRemote{
		Host:  strings.ToLower(host),
		Owner: path[:i],
		Repo:  path[i+1:],
	}, nil
}

// CommitURL renders the web URL of a commit. Templates from config take
// precedence over the built-in ones. Returns "" for unknown hosts.
func CommitURL(remote *ParsedRemote, hash string, templates map[string]string) string {
	if remote == nil || hash == "" {
		return ""
	}
	tmpl, ok := templates[remote.Host]
	if !ok {
		tmpl, ok = defaultURLTemplates[remote.Host]
	}
	if !ok {
		return ""
	}
	r := strings.NewReplacer(
		"{host}", remote.Host,
		"{owner}", remote.Owner,
		"{repo}", remote.Repo,
		"{hash}", hash,
	)
	return r.Replace(tmpl)
}
