// Package cli implements the renderfig command-line interface.
//
// This package provides commands for rendering diagram source files to
// images, inspecting the available engines, managing the image cache, and
// serving the pipeline over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/renderfig/renderfig/pkg/buildinfo"
	"github.com/renderfig/renderfig/pkg/cache"
	"github.com/renderfig/renderfig/pkg/config"
	"github.com/renderfig/renderfig/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means defaults only.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "renderfig",
		Short:        "Renderfig turns diagram code blocks into images",
		Long:         `Renderfig renders fenced diagram descriptions (GraphViz, PlantUML, Mermaid, TikZ, Asymptote) into images via external engines, with a content-addressed cache and per-format output negotiation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a renderfig.toml configuration file")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.enginesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the effective configuration for a command run.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use. The noCache flag forces
// caching off regardless of configuration.
func (c *CLI) newRunner(cfg config.Config, noCache bool) *pipeline.Runner {
	var store cache.Cache
	if noCache {
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(nil, store, c.Logger, cfg)
}

// cacheDir returns the effective cache directory for a configuration.
func cacheDir(cfg config.Config) (string, bool) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, true
	}
	return cache.DefaultRoot()
}
