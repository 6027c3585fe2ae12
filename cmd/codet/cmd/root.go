package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codet-dev/codet/internal/core"
	"github.com/codet-dev/codet/internal/render"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "codet",
	Short: "Analyze recent commit history across Git repositories",
	Long: `codet collects the recent commits of one or many local Git repositories,
filters them by author and keyword, and shows what changed and where.

It prints a commit table, can highlight frequently changed files, writes
a patch report ready for LLM review, and exports results for the
interactive dashboard (codet dash).`,
	Example: `  codet -p ~/src -r -d 7
  codet -e alice@example.com -k fix -m intersection -s
  codet -p ~/src -r -j ./out --format yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("codet %s (commit: %s, built: %s)", Version, Commit, Date)
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(versionString() + "\n")

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.codet/config.json)")

	f := rootCmd.Flags()
	f.StringP("path", "p", ".", "Path to a repository, or a directory of repositories with -r")
	f.BoolP("recursive", "r", false, "Scan subdirectories for repositories")
	f.IntP("days", "d", core.DefaultDays, "Only include commits from the last N days")
	f.StringArrayP("email", "e", nil, "Filter by author email (repeatable or comma-separated)")
	f.StringArrayP("user", "u", nil, "Filter by author name (repeatable or comma-separated)")
	f.StringArrayP("keyword", "k", nil, "Filter by keyword in message or diff (repeatable or comma-separated)")
	f.StringP("mode", "m", string(core.ModeUnion), "How filters combine: union or intersection")
	f.BoolP("hotspot", "s", false, "Show the file change hotspot table")
	f.BoolP("report", "g", false, "Write a patch/diff report for LLM analysis")
	f.StringP("json", "j", "", "Export matched commits to this directory")
	f.String("format", string(core.FormatJSON), "Export format: json or yaml")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// analysisFlags are the root command's flags after validation.
type analysisFlags struct {
	mode   core.Mode
	format core.Format
	days   int
}

// validateAnalysisFlags rejects bad flag values before any repository is read.
func validateAnalysisFlags(cmd *cobra.Command) (analysisFlags, error) {
	var af analysisFlags
	f := cmd.Flags()

	days, _ := f.GetInt("days")
	if days < 0 {
		return af, fmt.Errorf("invalid --days %d: must not be negative", days)
	}
	af.days = days

	modeFlag, _ := f.GetString("mode")
	mode, err := core.ParseMode(modeFlag)
	if err != nil {
		return af, err
	}
	af.mode = mode

	formatFlag, _ := f.GetString("format")
	format, err := core.ParseFormat(formatFlag)
	if err != nil {
		return af, err
	}
	af.format = format
	return af, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	af, err := validateAnalysisFlags(cmd)
	if err != nil {
		return err
	}

	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	cfg, err := d.config.Load()
	if err != nil {
		return err
	}

	// Flags win over the config file only when given explicitly.
	f := cmd.Flags()
	days := cfg.Defaults.Days
	if f.Changed("days") {
		days = af.days
	}
	mode, err := core.ParseMode(cfg.Defaults.Mode)
	if err != nil {
		return fmt.Errorf("config defaults.mode: %w", err)
	}
	if f.Changed("mode") {
		mode = af.mode
	}
	recursive := cfg.Defaults.Recursive
	if f.Changed("recursive") {
		recursive, _ = f.GetBool("recursive")
	}
	hotspot := cfg.Defaults.Hotspot
	if f.Changed("hotspot") {
		hotspot, _ = f.GetBool("hotspot")
	}
	path, _ := f.GetString("path")
	report, _ := f.GetBool("report")
	exportDir, _ := f.GetString("json")

	exec := core.NewExecutor(core.Options{
		Path:      path,
		Recursive: recursive,
		Days:      days,
		Filter: core.Filter{
			Emails:   getList(cmd, "email"),
			Users:    getList(cmd, "user"),
			Keywords: getList(cmd, "keyword"),
			Mode:     mode,
		},
		URLTemplates: cfg.URLTemplates,
	}, d.logger)

	if err := exec.InitializeRepos(); err != nil {
		return err
	}
	if err := exec.Raw(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cooked := exec.Cook()
	if core.CountCommits(cooked) > 0 {
		fmt.Fprintln(out, render.CommitTable(cooked))
	}

	if hotspot {
		res, err := exec.Hotspot(cfg.Hotspot.Exclude)
		if err != nil {
			return err
		}
		if table := render.HotspotTable(res); table != "" {
			fmt.Fprintln(out, table)
		}
	} else {
		d.logger.Info("Hotspot analysis disabled. Use -s or --hotspot flag to enable.")
	}

	if report {
		if _, err := exec.GenerateReport(cfg.Report.OutputDir); err != nil && !errors.Is(err, core.ErrNoCommits) {
			return fmt.Errorf("generating report: %w", err)
		}
	}

	if exportDir != "" {
		if _, err := exec.Export(core.ExpandPath(exportDir), af.format); err != nil && !errors.Is(err, core.ErrNoCommits) {
			return fmt.Errorf("exporting commits: %w", err)
		}
	}
	return nil
}
