// Package dash loads exported commit data and computes the dashboard's
// filters and aggregations. It has no UI dependencies.
package dash

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/codet-dev/codet/internal/core"
)

// ErrNoData is returned when no commit could be loaded.
var ErrNoData = errors.New("no commit data found")

const unknown = "Unknown"

// dateLayouts are tried in order when parsing commit dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CommitRow is one exported commit.
type CommitRow struct {
	Repo      string
	Hash      string
	Short     string
	Author    string
	Email     string
	Date      time.Time // zero when the exported date was missing or unparsable
	Summary   string
	Message   string
	URL       string
	AISummary string
	Files     []string
}

// FileRow is one changed file of one commit.
type FileRow struct {
	Repo   string
	Hash   string
	Short  string
	Path   string
	Name   string
	Dir    string // "root" for top-level files
	Ext    string // "no_ext" for files without extension
	Author string
	Date   time.Time
}

// Dataset is everything loaded from one or more export files.
type Dataset struct {
	Commits []CommitRow // newest first
	Files   []FileRow
	Sources []string // files that contributed commits
	Skipped []string // files that could not be decoded
}

// Load reads an export file, or every .json/.yaml/.yml file below a
// directory. Files of the same repository are merged; a later file wins
// for a repeated commit hash. A single file that cannot be decoded is an
// error; inside a directory such files are recorded in Skipped.
func Load(p string) (*Dataset, error) {
	p = core.ExpandPath(p)
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repos := make(map[string]map[string]core.CommitRecord)
	ds := &Dataset{}

	if !info.IsDir() {
		records, err := readFile(p)
		if err != nil {
			return nil, err
		}
		merge(repos, RepoFromFileName(p), records)
		ds.Sources = append(ds.Sources, p)
	} else {
		err := filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isExportFile(file) {
				return nil
			}
			records, err := readFile(file)
			if err != nil {
				ds.Skipped = append(ds.Skipped, file)
				return nil
			}
			merge(repos, RepoFromFileName(file), records)
			ds.Sources = append(ds.Sources, file)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
	}

	ds.build(repos)
	if len(ds.Commits) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, p)
	}
	return ds, nil
}

// RepoFromFileName derives the repository name from an export file name:
// the stem up to its last underscore, or the whole stem without one.
func RepoFromFileName(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.LastIndexByte(stem, '_'); i > 0 {
		return stem[:i]
	}
	return stem
}

func isExportFile(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func readFile(file string) (map[string]core.CommitRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	records := make(map[string]core.CommitRecord)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}
	return records, nil
}

func merge(repos map[string]map[string]core.CommitRecord, repo string, records map[string]core.CommitRecord) {
	m, ok := repos[repo]
	if !ok {
		m = make(map[string]core.CommitRecord, len(records))
		repos[repo] = m
	}
	for hash, r := range records {
		m[hash] = r
	}
}

func (ds *Dataset) build(repos map[string]map[string]core.CommitRecord) {
	for repo, records := range repos {
		for hash, r := range records {
			ds.Commits = append(ds.Commits, newCommitRow(repo, hash, r))
		}
	}
	sortNewestFirst(ds.Commits)

	for _, c := range ds.Commits {
		for _, f := range c.Files {
			ds.Files = append(ds.Files, newFileRow(c, f))
		}
	}
}

func newCommitRow(repo, hash string, r core.CommitRecord) CommitRow {
	short := hash
	if len(short) > 7 {
		short = short[:7]
	}
	return CommitRow{
		Repo:      repo,
		Hash:      hash,
		Short:     short,
		Author:    orUnknown(r.Author),
		Email:     orUnknown(r.Email),
		Date:      ParseDate(r.Date),
		Summary:   r.Summary,
		Message:   r.Message,
		URL:       r.URL,
		AISummary: r.AISummary,
		Files:     r.ChangedFiles,
	}
}

func newFileRow(c CommitRow, file string) FileRow {
	dir := path.Dir(file)
	if dir == "." || dir == "" {
		dir = "root"
	}
	ext := path.Ext(file)
	if ext == "" {
		ext = "no_ext"
	}
	return FileRow{
		Repo:   c.Repo,
		Hash:   c.Hash,
		Short:  c.Short,
		Path:   file,
		Name:   path.Base(file),
		Dir:    dir,
		Ext:    ext,
		Author: c.Author,
		Date:   c.Date,
	}
}

// ParseDate parses an exported commit date. It returns the zero time when
// no known layout matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sortNewestFirst orders commits by date, newest first. Unknown dates sort
// last; ties break by repository then hash.
func sortNewestFirst(rows []CommitRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Repo != b.Repo {
			return a.Repo < b.Repo
		}
		return a.Hash < b.Hash
	})
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
