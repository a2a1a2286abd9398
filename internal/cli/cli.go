// Package cli implements the archsketch command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archsketch/archsketch/pkg/assets"
	"github.com/archsketch/archsketch/pkg/buildinfo"
	"github.com/archsketch/archsketch/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for config files and display.
const appName = "archsketch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archsketch renders architecture diagrams from declarative documents",
		Long:         `Archsketch is a CLI tool for declaring architecture diagrams as code - nodes, clusters, and edges - and rendering them to image artifacts through Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the bundled Graphviz engine
// and an asset store rooted at the given directories.
func (c *CLI) newRunner(assetDirs []string) *pipeline.Runner {
	return pipeline.NewRunner(nil, assets.NewDir(assetDirs...), c.Logger)
}
