package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/archsketch/archsketch/pkg/pipeline"
	"github.com/archsketch/archsketch/pkg/render"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output     string   // artifact output directory
	formats    []string // output formats: "png", "svg", "dot"
	timeout    time.Duration
	configPath string   // explicit config file path
	assetDirs  []string // icon search directories
	open       bool     // open the first artifact after rendering
}

// generateCommand creates the generate command, which builds the bundled
// architecture documents and renders each one to the requested formats.
//
// Documents render concurrently and independently: one document's failure
// never blocks another, and every requested artifact is attempted before the
// command reports. The command exits non-zero when any artifact failed.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the bundled architecture documents",
		Long: `Generate builds the bundled architecture documents and renders each one
to the requested formats through Graphviz. Artifacts are written as
<out-dir>/<stem>.<format>; a failed rendering pass leaves no partial file.

Defaults are read from archsketch.toml in the working directory when present;
flags override config values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg, cmd)
			opts.formats = parseFormats(formatsStr, cfg.Formats)
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "artifact output directory (default \".\")")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot (comma-separated)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout per rendering pass (default 30s)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default \"archsketch.toml\" if present)")
	cmd.Flags().StringSliceVar(&opts.assetDirs, "assets", nil, "icon search directories (default \"assets\")")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the first artifact after rendering")

	return cmd
}

// applyConfig fills in flag values the user did not set from the config file.
func applyConfig(opts *generateOpts, cfg Config, cmd *cobra.Command) {
	if !cmd.Flags().Changed("out") && cfg.OutDir != "" {
		opts.output = cfg.OutDir
	}
	if !cmd.Flags().Changed("timeout") && cfg.Timeout.Duration > 0 {
		opts.timeout = cfg.Timeout.Duration
	}
	if !cmd.Flags().Changed("assets") && len(cfg.AssetDirs) > 0 {
		opts.assetDirs = cfg.AssetDirs
	}
	if !cmd.Flags().Changed("open") {
		opts.open = cfg.Open
	}
	if len(opts.assetDirs) == 0 {
		opts.assetDirs = []string{"assets"}
	}
}

// parseFormats parses the --format flag into a slice of formats, falling back
// to the config file and then the pipeline default.
func parseFormats(s string, fromConfig []string) []string {
	if s != "" {
		return strings.Split(s, ",")
	}
	if len(fromConfig) > 0 {
		return fromConfig
	}
	return []string{string(pipeline.DefaultFormat)}
}

// runGenerate builds every bundled document, renders them concurrently, and
// prints a per-artifact summary. It returns an error when any document or
// artifact failed, so the process exits non-zero.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	formats := make([]render.Format, len(opts.formats))
	for i, f := range opts.formats {
		formats[i] = render.Format(f)
	}
	if err := render.ValidateFormats(formats); err != nil {
		return err
	}

	builtins := builtinDocuments()
	jobs := make([]pipeline.Job, 0, len(builtins))
	for _, bd := range builtins {
		doc, err := bd.build()
		if err != nil {
			return fmt.Errorf("build document %s: %w", bd.stem, err)
		}
		jobs = append(jobs, pipeline.Job{
			Doc: doc,
			Req: pipeline.Request{
				Formats:  formats,
				Stem:     bd.stem,
				OutDir:   opts.output,
				Timeout:  opts.timeout,
				AutoOpen: opts.open,
				Logger:   logger,
			},
		})
	}

	runner := c.newRunner(opts.assetDirs)
	results := runner.ExecuteAll(ctx, jobs)

	var rendered, failed int
	var firstArtifact string
	for _, res := range results {
		printNewline()
		if res.OK() {
			printSuccess("%s", StyleTitle.Render(res.Title))
		} else {
			printError("%s", StyleTitle.Render(res.Title))
		}
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount)

		if res.Err != nil {
			failed++
			printDetail("%v", res.Err)
			continue
		}
		for _, o := range res.Outcomes {
			if o.OK() {
				rendered++
				printFile(o.Path)
				if firstArtifact == "" {
					firstArtifact = o.Path
				}
			} else {
				failed++
				printDetail("%s: %v", o.Format, o.Err)
			}
		}
	}

	printNewline()
	if failed > 0 {
		prog.done(fmt.Sprintf("Rendered %d artifacts, %d failed", rendered, failed))
		return fmt.Errorf("%d of %d artifacts failed", failed, rendered+failed)
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts from %d documents", rendered, len(results)))

	if opts.open && firstArtifact != "" {
		if err := openArtifact(ctx, firstArtifact); err != nil {
			printWarning("could not open %s: %v", firstArtifact, err)
		}
	}
	return nil
}

// openArtifact opens path with the platform's default viewer. Rendering never
// opens anything on its own; this runs only when the user asked for it.
func openArtifact(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Start()
}
