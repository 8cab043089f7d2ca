package main

import (
	stderrors "errors"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vlist/internal/config"
	"github.com/vango-dev/vlist/internal/errors"
)

// globals holds what every subcommand needs after the root pre-run.
type globals struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "vlist",
		Short: "Render and patch ordered node lists",
		Long: `vlist reconciles ordered lists of virtual nodes against an in-memory
host tree.

Patch scripts describe successive list states; each state is patched
against the one before it and the resulting HTML and host mutation counts
are reported. The same engine is served over HTTP and WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to vlist.json (default: ./vlist.json when present)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return cmd
}

// setup loads configuration and installs the logger.
func (g *globals) setup(cmd *cobra.Command) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg

	level := charmlog.Level(cfg.LogLevel())
	if g.verbose {
		level = charmlog.DebugLevel
	}
	g.logger = slog.New(newLogger(cmd.ErrOrStderr(), level))
	slog.SetDefault(g.logger)

	if cfg.Path() != "" {
		g.logger.Debug("config loaded", "path", cfg.Path())
	}
	return nil
}

// loadConfig reads --config, or ./vlist.json when it exists, or the defaults.
func (g *globals) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	cfg, err := config.Load(".")
	var ce *errors.Error
	if stderrors.As(err, &ce) && ce.Code == "E141" {
		return config.New(), nil
	}
	return cfg, err
}
