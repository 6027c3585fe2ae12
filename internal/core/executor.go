package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures an analysis run.
type Options struct {
	Path         string
	Recursive    bool
	Days         int
	Filter       Filter
	URLTemplates map[string]string
}

// Executor runs the analysis pipeline: discover repositories, collect raw
// commits, cook them through the filter, then derive hotspots, the patch
// report and exports from the cooked set.
type Executor struct {
	opts     Options
	logger   *log.Logger
	analyzer *GitAnalyzer

	raw    []RepoCommits
	cooked []RepoCommits

	// now is overridable for tests.
	now func() time.Time
}

// NewExecutor creates an Executor. A nil logger discards all output.
func NewExecutor(opts Options, logger *log.Logger) *Executor {
	if logger == nil {
		logger = discardLogger()
	}
	if opts.Filter.Mode == "" {
		opts.Filter.Mode = ModeUnion
	}
	return &Executor{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// InitializeRepos discovers the repositories to analyze and opens them.
func (e *Executor) InitializeRepos() error {
	e.logger.Info("Analyzing path", "path", e.opts.Path)
	if e.opts.Recursive {
		e.logger.Info("Recursive mode enabled, scanning all subdirectories")
	}

	repos, err := DiscoverRepos(e.opts.Path, e.opts.Recursive)
	if err != nil {
		if errors.Is(err, ErrNoRepositories) {
			e.logger.Warn("No valid Git repositories found")
		}
		return err
	}
	for _, r := range repos {
		e.logger.Info("Found Git repo", "name", r.Name, "path", r.Path)
	}

	analyzer, err := NewGitAnalyzer(repos, e.opts.URLTemplates, e.logger)
	if err != nil {
		return fmt.Errorf("initializing git analyzer: %w", err)
	}
	analyzer.now = e.now
	e.analyzer = analyzer
	e.logger.Infof("Successfully loaded %d Git repositories", len(repos))
	return nil
}

// Raw collects unfiltered commits from every repository.
func (e *Executor) Raw(ctx context.Context) error {
	if e.analyzer == nil {
		return errors.New("repositories not initialized")
	}
	from := e.now().AddDate(0, 0, -e.opts.Days)
	e.logger.Info("Collecting commits", "since", from.Format("2006-01-02"))

	raw, err := e.analyzer.CollectCommits(ctx, e.opts.Days)
	if err != nil {
		return err
	}
	e.raw = raw
	e.logger.Debug("Raw commits collected", "count", CountCommits(raw))
	return nil
}

// Cook applies the filter to the raw commits and returns the result.
func (e *Executor) Cook() []RepoCommits {
	f := e.opts.Filter
	if CountCommits(e.raw) == 0 {
		e.logger.Warn("No matching commits found")
		e.cooked = f.Apply(e.raw)
		return e.cooked
	}

	if f.Mode == ModeIntersection {
		e.logger.Info("[Search Mode] Intersection mode: commit must match all specified conditions")
	} else {
		e.logger.Info("[Search Mode] Union mode: commit included if it matches any condition")
	}
	for _, line := range f.Describe() {
		e.logger.Info("  - " + line)
	}

	e.cooked = f.Apply(e.raw)
	e.logger.Infof("Processing complete, found %d matching commits", CountCommits(e.cooked))
	return e.cooked
}

// Cooked returns the filtered commits of the last Cook call.
func (e *Executor) Cooked() []RepoCommits {
	return e.cooked
}

// Hotspot analyzes file change frequency over the cooked commits.
func (e *Executor) Hotspot(exclude []string) (*HotspotResult, error) {
	e.logger.Info("Starting code hotspot analysis")
	res, err := Hotspots(e.cooked, exclude)
	if err != nil {
		return nil, err
	}
	e.logger.Infof("Code hotspot analysis complete, detected %d total file changes", res.Total)
	if len(res.Groups) == 0 {
		e.logger.Info("No matching files found in hotspot analysis")
	}
	return res, nil
}

// GenerateReport writes the patch/diff report for the cooked commits.
func (e *Executor) GenerateReport(dir string) (string, error) {
	path, err := WriteReport(dir, e.cooked, e.opts.Filter.Keywords, e.now())
	if err != nil {
		if errors.Is(err, ErrNoCommits) {
			e.logger.Warn("No processed commits available for report generation")
		}
		return "", err
	}
	e.logger.Info("Git patch/diff report generated", "file", path)
	return path, nil
}

// Export writes the cooked commits as one file per repository.
func (e *Executor) Export(dir string, format Format) ([]string, error) {
	paths, err := Export(dir, format, e.cooked, e.now())
	if err != nil {
		if errors.Is(err, ErrNoCommits) {
			e.logger.Warn("No processed commits available for export")
		}
		return nil, err
	}
	for _, p := range paths {
		e.logger.Info("Exported commits", "file", p)
	}
	return paths, nil
}
