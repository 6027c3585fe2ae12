package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mkRepo creates a directory that looks like a repository to discovery.
func mkRepo(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func repoNames(repos []Repo) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	return names
}

func TestDiscoverRepos_SingleRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "widgets")
	mkRepo(t, dir)

	repos, err := DiscoverRepos(dir, false)
	if err != nil {
		t.Fatalf("DiscoverRepos() error: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(repos))
	}
	if repos[0].Name != "widgets" {
		t.Errorf("Name = %q, want %q", repos[0].Name, "widgets")
	}
	if repos[0].Path != dir {
		t.Errorf("Path = %q, want %q", repos[0].Path, dir)
	}
}

func TestDiscoverRepos_NotARepositoryWithoutRecursion(t *testing.T) {
	base := t.TempDir()
	mkRepo(t, filepath.Join(base, "child"))

	_, err := DiscoverRepos(base, false)
	if !errors.Is(err, ErrNoRepositories) {
		t.Fatalf("expected ErrNoRepositories, got %v", err)
	}
	if !strings.Contains(err.Error(), "-r") {
		t.Errorf("error should hint at -r, got %v", err)
	}
}

func TestDiscoverRepos_Recursive(t *testing.T) {
	base := t.TempDir()
	mkRepo(t, filepath.Join(base, "beta"))
	mkRepo(t, filepath.Join(base, "alpha"))
	mkRepo(t, filepath.Join(base, "group", "gamma"))
	if err := os.MkdirAll(filepath.Join(base, "plain"), 0o755); err != nil {
		t.Fatal(err)
	}

	repos, err := DiscoverRepos(base, true)
	if err != nil {
		t.Fatalf("DiscoverRepos() error: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "beta", "gamma"}, repoNames(repos)); diff != "" {
		t.Errorf("repo names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverRepos_RecursiveIncludesRoot(t *testing.T) {
	base := filepath.Join(t.TempDir(), "mono")
	mkRepo(t, base)
	mkRepo(t, filepath.Join(base, "tools", "sub"))

	repos, err := DiscoverRepos(base, true)
	if err != nil {
		t.Fatalf("DiscoverRepos() error: %v", err)
	}
	if diff := cmp.Diff([]string{"mono", "sub"}, repoNames(repos)); diff != "" {
		t.Errorf("repo names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverRepos_NameCollisionUsesRelativePath(t *testing.T) {
	base := t.TempDir()
	mkRepo(t, filepath.Join(base, "team-a", "api"))
	mkRepo(t, filepath.Join(base, "team-b", "api"))
	mkRepo(t, filepath.Join(base, "web"))

	repos, err := DiscoverRepos(base, true)
	if err != nil {
		t.Fatalf("DiscoverRepos() error: %v", err)
	}
	if diff := cmp.Diff([]string{"team-a/api", "team-b/api", "web"}, repoNames(repos)); diff != "" {
		t.Errorf("repo names mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverRepos_RecursiveFindsNothing(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "a", "b"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := DiscoverRepos(base, true)
	if !errors.Is(err, ErrNoRepositories) {
		t.Fatalf("expected ErrNoRepositories, got %v", err)
	}
}

func TestDiscoverRepos_PathNotFound(t *testing.T) {
	_, err := DiscoverRepos(filepath.Join(t.TempDir(), "missing"), false)
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !strings.Contains(err.Error(), "path not found") {
		t.Errorf("error = %v, want path not found", err)
	}
}

func TestIsRepo_GitFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsRepo(dir) {
		t.Error("IsRepo() should accept a .git file")
	}
}
