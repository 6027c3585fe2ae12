package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/codet-dev/codet/internal/core"
	"github.com/codet-dev/codet/internal/dash"
	"github.com/codet-dev/codet/internal/tui"
)

// printWidth is the render width used when stdout is not a terminal.
const printWidth = 100

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Browse exported commits in an interactive dashboard",
	Long: `Load commits exported with -j (JSON or YAML) and explore them by author,
repository, file and day.

PATH may be a single export file or a directory, which is searched
recursively. Without a terminal, or with --print, the selected tab is
rendered to stdout instead.`,
	Example: `  codet dash -p ./out
  codet dash -p ./out --since 2024-01-01 --author alice --tab hotspots
  codet dash -p ./out/api_20240205T101500.json --tab details --print`,
	Args: cobra.NoArgs,
	RunE: runDash,
}

func init() {
	f := dashCmd.Flags()
	f.StringP("path", "p", ".", "Export file or directory of export files")
	f.String("since", "", "Only include commits on or after this date (YYYY-MM-DD)")
	f.String("until", "", "Only include commits on or before this date (YYYY-MM-DD)")
	f.StringArray("author", nil, "Filter by author name (repeatable or comma-separated)")
	f.StringArray("repo", nil, "Filter by repository (repeatable or comma-separated)")
	f.StringArray("ext", nil, "Filter file changes by extension, e.g. .go or no_ext (repeatable or comma-separated)")
	f.String("tab", "overview", "Tab to open: "+strings.Join(tui.TabNames(), ", "))
	f.Bool("print", false, "Render the tab to stdout instead of opening the dashboard")

	rootCmd.AddCommand(dashCmd)
}

func runDash(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()

	sinceFlag, _ := f.GetString("since")
	since, err := parseDateFlag("since", sinceFlag)
	if err != nil {
		return err
	}
	untilFlag, _ := f.GetString("until")
	until, err := parseDateFlag("until", untilFlag)
	if err != nil {
		return err
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return fmt.Errorf("--until %s is before --since %s", untilFlag, sinceFlag)
	}

	tabFlag, _ := f.GetString("tab")
	tab, err := tui.ParseTab(tabFlag)
	if err != nil {
		return err
	}

	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	path, _ := f.GetString("path")
	ds, err := dash.Load(core.ExpandPath(path))
	if err != nil {
		return err
	}
	for _, s := range ds.Skipped {
		d.logger.Warn("Skipped unreadable export file", "file", s)
	}
	d.logger.Debug("Loaded exports", "commits", len(ds.Commits), "files", len(ds.Sources))

	filter := dash.Filter{
		Since:   since,
		Until:   endOfDay(until),
		Authors: getList(cmd, "author"),
		Repos:   getList(cmd, "repo"),
		Exts:    getList(cmd, "ext"),
	}

	printOnly, _ := f.GetBool("print")
	if printOnly || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTab(tab, ds, filter, printWidth))
		return nil
	}

	p := tea.NewProgram(tui.NewApp(ds, filter, tab), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
