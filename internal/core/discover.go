package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const gitDirName = ".git"

// IsRepo reports whether dir holds a Git repository: a .git directory or a
// .git file pointing at a worktree's gitdir.
func IsRepo(dir string) bool {
	return pathExists(filepath.Join(dir, gitDirName))
}

// DiscoverRepos returns the repositories to analyze under root.
//
// Without recursion root itself must be a repository. With recursion every
// directory below root (root included) that contains .git is returned, in
// lexical walk order. Names are directory base names; when two repositories
// share a base name the slash-separated path relative to root is used instead.
func DiscoverRepos(root string, recursive bool) ([]Repo, error) {
	absRoot, err := filepath.Abs(ExpandPath(root))
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if !dirExists(absRoot) {
		return nil, fmt.Errorf("path not found: %s", absRoot)
	}

	var dirs []string
	if recursive {
		dirs, err = walkRepos(absRoot)
		if err != nil {
			return nil, err
		}
	} else {
		if !IsRepo(absRoot) {
			return nil, fmt.Errorf("%w: %s is not a Git repository (use -r to scan subdirectories)", ErrNoRepositories, absRoot)
		}
		dirs = []string{absRoot}
	}

	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoRepositories, absRoot)
	}

	return nameRepos(absRoot, dirs), nil
}

func walkRepos(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if path != root && os.IsPermission(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == gitDirName {
			return filepath.SkipDir
		}
		if IsRepo(path) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return dirs, nil
}

func nameRepos(root string, dirs []string) []Repo {
	counts := make(map[string]int, len(dirs))
	for _, d := range dirs {
		counts[filepath.Base(d)]++
	}

	repos := make([]Repo, 0, len(dirs))
	for _, d := range dirs {
		name := filepath.Base(d)
		if counts[name] > 1 {
			if rel, err := filepath.Rel(root, d); err == nil && rel != "." {
				name = strings.ReplaceAll(rel, string(filepath.Separator), "/")
			}
		}
		repos = append(repos, Repo{Name: name, Path: d})
	}
	return repos
}
