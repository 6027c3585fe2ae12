package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// TierCount is the number of colour bands hotspots are sorted into.
const TierCount = 5

// HotspotFile is a file with its change count and tier (1 = hottest).
type HotspotFile struct {
	Path  string
	Repo  string
	Count int
	Tier  int
}

// HotspotGroup collects the files sharing a "repo/top-level-dir" key.
type HotspotGroup struct {
	Key   string
	Files []HotspotFile
}

// HotspotResult is the outcome of a hotspot analysis.
type HotspotResult struct {
	Total  int // Sum of all file change counts
	Max    int // Largest single file change count
	Files  int // Number of distinct files changed
	Groups []HotspotGroup
}

// Tier returns the hotspot tier of count relative to max: 1 for counts of
// at least 5/6 of max down to 5 for at least 1/6. Zero means the count is
// too low to report.
func Tier(count, max int) int {
	if max <= 0 || count <= 0 {
		return 0
	}
	for tier := 1; tier <= TierCount; tier++ {
		// count >= max * (6-tier)/6, kept in integers
		if count*6 >= max*(6-tier) {
			return tier
		}
	}
	return 0
}

// Hotspots counts file changes across the given commits and groups the
// files that reach a tier. Paths matching any exclude glob are ignored.
func Hotspots(repos []RepoCommits, exclude []string) (*HotspotResult, error) {
	counts := make(map[string]int)
	owner := make(map[string]string)
	for _, rc := range repos {
		for _, c := range rc.Commits {
			for _, path := range c.ChangedFiles {
				skip, err := excluded(path, exclude)
				if err != nil {
					return nil, err
				}
				if skip {
					continue
				}
				if _, seen := counts[path]; !seen {
					owner[path] = rc.Repo.Name
				}
				counts[path]++
			}
		}
	}

	res := &HotspotResult{Files: len(counts)}
	for _, n := range counts {
		res.Total += n
		if n > res.Max {
			res.Max = n
		}
	}

	files := make([]HotspotFile, 0, len(counts))
	for path, n := range counts {
		files = append(files, HotspotFile{Path: path, Repo: owner[path], Count: n, Tier: Tier(n, res.Max)})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Count != files[j].Count {
			return files[i].Count > files[j].Count
		}
		return files[i].Path < files[j].Path
	})

	groups := make(map[string]*HotspotGroup)
	for _, f := range files {
		if f.Tier == 0 {
			continue
		}
		key := f.Repo + "/" + topDir(f.Path)
		g, ok := groups[key]
		if !ok {
			g = &HotspotGroup{Key: key}
			groups[key] = g
		}
		g.Files = append(g.Files, f)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		res.Groups = append(res.Groups, *groups[k])
	}
	return res, nil
}

// topDir returns the first path segment, or "root" for top-level files.
func topDir(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return "root"
}

func excluded(path string, patterns []string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
