package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// exportStampLayout has no underscore so the repository name can be
// recovered by splitting the file stem at its last underscore.
const exportStampLayout = "20060102T150405"

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q (want json or yaml)", ErrInvalidFormat, s)
}

// ExportFileName returns the file name used for a repository's export.
func ExportFileName(repo string, format Format, now time.Time) string {
	return safeFileName(repo) + "_" + now.Format(exportStampLayout) + "." + string(format)
}

// EncodeCommits serializes commits as a hash -> record mapping.
func EncodeCommits(commits []Commit, format Format) ([]byte, error) {
	records := make(map[string]CommitRecord, len(commits))
	for _, c := range commits {
		records[c.Hash] = c.ToRecord()
	}

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("marshaling yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling json: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w %q", ErrInvalidFormat, format)
}

// Export writes one file per repository with commits into dir and returns
// the written paths in repository order.
func Export(dir string, format Format, repos []RepoCommits, now time.Time) ([]string, error) {
	if CountCommits(repos) == 0 {
		return nil, ErrNoCommits
	}

	dir, err := outputDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, rc := range repos {
		if len(rc.Commits) == 0 {
			continue
		}
		data, err := EncodeCommits(rc.Commits, format)
		if err != nil {
			return paths, fmt.Errorf("encoding %s: %w", rc.Repo.Name, err)
		}
		path := filepath.Join(dir, ExportFileName(rc.Repo.Name, format, now))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
