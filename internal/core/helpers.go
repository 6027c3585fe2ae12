package core

import (
	"os"
	"path/filepath"
	"strings"
)

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExpandPath expands a leading ~ to the home directory and $VAR references.
func ExpandPath(p string) string {
	if strings.Contains(p, "$") {
		p = os.ExpandEnv(p)
	}

	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// safeFileName replaces characters that cannot appear in a single path element.
func safeFileName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	name = r.Replace(name)
	if name == "" {
		name = "repo"
	}
	return name
}
