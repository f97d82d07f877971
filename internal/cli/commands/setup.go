package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cookbook/internal/cli/config"
	"github.com/leapstack-labs/cookbook/internal/cli/output"
	"github.com/leapstack-labs/cookbook/internal/ui"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Server builds the web server described by the config. Commands that only
// render pages use it for its route table, renderer and assets.
func (c *CommandContext) Server() (*ui.Server, error) {
	return ui.NewServer(serverConfig(c.Cfg, c.Logger))
}

// getConfig returns the current configuration, or the defaults when no
// config has been loaded (commands run outside the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func serverConfig(cfg *config.Config, logger *slog.Logger) ui.Config {
	return ui.Config{
		Host:            cfg.UI.Host,
		Port:            cfg.UI.Port,
		Watch:           cfg.UI.Watch,
		Dev:             cfg.UI.Dev,
		Minify:          cfg.UI.Minify,
		StaticDir:       cfg.UI.StaticDir,
		ShutdownTimeout: cfg.UI.ShutdownTimeout,
		Title:           cfg.UI.Title,
		Logger:          logger,
	}
}
