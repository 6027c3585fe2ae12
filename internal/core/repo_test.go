package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testCommit describes one commit created by initTestRepo.
type testCommit struct {
	files   map[string]string // path -> content (written and staged)
	remove  []string          // paths to delete
	message string
	author  string
	email   string
	when    time.Time // zero means now
}

// initTestRepo creates a repository at dir with the given commits applied in order.
func initTestRepo(t *testing.T, dir string, commits ...testCommit) *git.Repository {
	t.Helper()

	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit(%s) error: %v", dir, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error: %v", err)
	}

	for _, c := range commits {
		for path, content := range c.files {
			full := filepath.Join(dir, filepath.FromSlash(path))
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := wt.Add(path); err != nil {
				t.Fatalf("Add(%s) error: %v", path, err)
			}
		}
		for _, path := range c.remove {
			if _, err := wt.Remove(path); err != nil {
				t.Fatalf("Remove(%s) error: %v", path, err)
			}
		}

		sig := &object.Signature{Name: c.author, Email: c.email, When: c.when}
		if sig.Name == "" {
			sig.Name = "Test User"
		}
		if sig.Email == "" {
			sig.Email = "test@example.com"
		}
		if sig.When.IsZero() {
			sig.When = time.Now()
		}
		if _, err := wt.Commit(c.message, &git.CommitOptions{Author: sig}); err != nil {
			t.Fatalf("Commit(%q) error: %v", c.message, err)
		}
	}
	return r
}

// setOrigin adds an origin remote pointing at url.
func setOrigin(t *testing.T, r *git.Repository, url string) {
	t.Helper()
	if _, err := r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{url}}); err != nil {
		t.Fatalf("CreateRemote() error: %v", err)
	}
}
