package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"
)

// GitAnalyzer reads commit history from a set of local repositories.
type GitAnalyzer struct {
	repos     []Repo
	templates map[string]string
	logger    *log.Logger
	workers   int

	// now is overridable for tests.
	now func() time.Time
}

// NewGitAnalyzer verifies that every repository can be opened and returns an
// analyzer over them. templates maps hosts to commit URL templates.
func NewGitAnalyzer(repos []Repo, templates map[string]string, logger *log.Logger) (*GitAnalyzer, error) {
	if len(repos) == 0 {
		return nil, ErrNoRepositories
	}
	if logger == nil {
		logger = discardLogger()
	}
	for _, repo := range repos {
		if _, err := openRepo(repo.Path); err != nil {
			return nil, fmt.Errorf("opening %s: %w", repo.Name, err)
		}
	}
	return &GitAnalyzer{
		repos:     repos,
		templates: templates,
		logger:    logger,
		workers:   runtime.NumCPU(),
		now:       time.Now,
	}, nil
}

// Repos returns the repositories the analyzer reads, in discovery order.
func (g *GitAnalyzer) Repos() []Repo {
	return g.repos
}

// CollectCommits returns the commits of every repository whose commit time
// falls within the last days days. Repositories are read concurrently; the
// result keeps discovery order.
func (g *GitAnalyzer) CollectCommits(ctx context.Context, days int) ([]RepoCommits, error) {
	since := g.now().AddDate(0, 0, -days)
	g.logger.Debug("collecting commits", "since", since.Format("2006-01-02"), "repos", len(g.repos))

	results := make([]RepoCommits, len(g.repos))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, repo := range g.repos {
		i, repo := i, repo
		eg.Go(func() error {
			commits, err := g.readCommits(ctx, repo, since)
			if err != nil {
				return fmt.Errorf("reading %s: %w", repo.Name, err)
			}
			g.logger.Debug("read repository", "repo", repo.Name, "commits", len(commits))
			results[i] = RepoCommits{Repo: repo, Commits: commits}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *GitAnalyzer) readCommits(ctx context.Context, repo Repo, since time.Time) ([]Commit, error) {
	r, err := openRepo(repo.Path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	head, err := r.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil // Empty repository
		}
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	var remote *ParsedRemote
	if u := originURL(r); u != "" {
		remote, err = ParseRemote(u)
		if err != nil {
			g.logger.Debug("origin remote not mapped to a web URL", "repo", repo.Name, "err", err)
		}
	}

	iter, err := r.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
		Since: &since,
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files, diff, err := commitPatch(ctx, c)
		if err != nil {
			return fmt.Errorf("diffing %s: %w", c.Hash, err)
		}
		hash := c.Hash.String()
		commits = append(commits, Commit{
			Hash:         hash,
			Author:       c.Author.Name,
			Email:        c.Author.Email,
			Date:         c.Committer.When,
			Summary:      firstLine(c.Message),
			Message:      c.Message,
			ChangedFiles: files,
			Diff:         diff,
			URL:          CommitURL(remote, hash, g.templates),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// commitPatch diffs a commit against its first parent, or against the empty
// tree for a root commit.
func commitPatch(ctx context.Context, c *object.Commit) ([]string, string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, "", fmt.Errorf("reading tree: %w", err)
	}

	parentTree := &object.Tree{}
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, "", fmt.Errorf("reading parent: %w", err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, "", fmt.Errorf("reading parent tree: %w", err)
		}
	}

	patch, err := parentTree.PatchContext(ctx, tree)
	if err != nil {
		return nil, "", err
	}

	var files []string
	for _, fp := range patch.FilePatches() {
		from, to := fp.Files()
		switch {
		case to != nil:
			files = append(files, to.Path())
		case from != nil:
			files = append(files, from.Path())
		}
	}
	return files, patch.String(), nil
}

func openRepo(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
}

func originURL(r *git.Repository) string {
	remote, err := r.Remote(git.DefaultRemoteName)
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
