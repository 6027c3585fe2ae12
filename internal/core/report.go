package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	reportPrefix      = "git_patch_report_"
	reportSuffix      = ".diff"
	reportStampLayout = "20060102_150405"
	reportRule        = "==============================================================================="
	commitRule        = "-------------------------------------------------------------------------------"
)

// analysisPrompt is embedded before each commit's patch so the report can be
// handed to an LLM agent as-is. %[1]s is the repository, %[2]s the keywords.
const analysisPrompt = `
As an expert in the current %[1]s project, you need to analyze the Git commit message and diff info related to '%[2]s' feature. Answer these questions:
1. What are the main changes in this commit for %[1]s.
2. What problems might these changes solve for %[1]s.
3. Extract key info from the commit message and explain how it describes the code submission for %[1]s.
4. Analyze the relationship between the submitted code and its description. Point out which code implements the goals in the commit message for %[1]s.
5. Evaluate the impact of this commit on the project. Which files or functionalities are affected for %[1]s.
6. Explain the context and significance of this commit. Does it address issues or implement new features for %[1]s.
7. Don't explain abbreviations.

The output should not include the above rules and requirements; it should be naturally integrated.
`

// ReportFileName returns the report file name for a generation time.
func ReportFileName(now time.Time) string {
	return reportPrefix + now.Format(reportStampLayout) + reportSuffix
}

// RenderReport builds the patch/diff report text. Repositories without
// commits are skipped.
func RenderReport(repos []RepoCommits, keywords []string, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Git Patch/Diff Report\n")
	fmt.Fprintf(&b, "# Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	kw := strings.Join(keywords, ", ")
	for _, rc := range repos {
		if len(rc.Commits) == 0 {
			continue
		}
		b.WriteString(reportRule + "\n")
		fmt.Fprintf(&b, "Repository: %s\n", rc.Repo.Name)
		b.WriteString(reportRule + "\n\n")

		for _, c := range rc.Commits {
			writeReportCommit(&b, rc.Repo.Name, kw, c)
		}
	}
	return b.String()
}

func writeReportCommit(b *strings.Builder, repo, keywords string, c Commit) {
	b.WriteString(commitRule + "\n")
	fmt.Fprintf(b, "Commit: %s\n", c.Hash)
	fmt.Fprintf(b, "Author: %s <%s>\n", orUnknown(c.Author), orUnknown(c.Email))
	fmt.Fprintf(b, "Date: %s\n\n", c.Date.Format("2006-01-02 15:04:05 -0700"))

	b.WriteString("Commit Message:\n")
	msg := strings.TrimRight(c.Message, "\n")
	if msg == "" {
		msg = "No message"
	}
	b.WriteString(msg + "\n\n")

	b.WriteString("Analysis Context:\n")
	fmt.Fprintf(b, analysisPrompt, repo, keywords)
	b.WriteString("\n\n")

	if len(c.ChangedFiles) > 0 {
		b.WriteString("Changed Files:\n")
		for _, f := range c.ChangedFiles {
			fmt.Fprintf(b, "  - %s\n", f)
		}
		b.WriteString("\n")
	}

	if c.Diff != "" {
		b.WriteString("Git Patch/Diff:\n")
		b.WriteString(c.Diff)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No diff information available for this commit\n\n")
	}

	if c.URL != "" {
		fmt.Fprintf(b, "Commit URL: %s\n\n", c.URL)
	}
}

// WriteReport writes the report into dir (the working directory when empty)
// and returns its absolute path. ErrNoCommits is returned, and nothing is
// written, when no repository has commits.
func WriteReport(dir string, repos []RepoCommits, keywords []string, now time.Time) (string, error) {
	if CountCommits(repos) == 0 {
		return "", ErrNoCommits
	}

	dir, err := outputDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ReportFileName(now))
	if err := os.WriteFile(path, []byte(RenderReport(repos, keywords, now)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// outputDir resolves and creates an output directory.
func outputDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return abs, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
