package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/codet-dev/codet/internal/core"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config *core.ConfigManager
	logger *log.Logger
}

// newDeps creates shared dependencies from the persistent --config and
// --debug flags. Called lazily by commands that need them.
func newDeps(cmd *cobra.Command) (*deps, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logger := core.NewLogger(os.Stderr, debug)

	var config *core.ConfigManager
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		config = core.NewConfigManagerWithFile(core.ExpandPath(path))
	} else {
		cm, err := core.NewConfigManager()
		if err != nil {
			return nil, fmt.Errorf("initializing config: %w", err)
		}
		config = cm
	}

	logger.Debug("Using config", "path", config.ConfigPath())
	return &deps{
		config: config,
		logger: logger,
	}, nil
}
