package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewdock/pkg/config"
	"github.com/matzehuels/viewdock/pkg/pipeline"
	"github.com/matzehuels/viewdock/pkg/script"
)

// renderFlags holds the flags shared by render and demo.
type renderFlags struct {
	formats     string
	output      string
	scale       float64
	labels      bool
	background  string
	inset       bool
	pngEngine   string
	visibleOnly bool
	noCache     bool
	refresh     bool
}

func (f *renderFlags) register(cmd *cobra.Command, defaultFormats string) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", defaultFormats, "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output base path or directory (default: next to the input)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixels per layout unit")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "draw view handles (svg, pdf) or tree geometry (dot, tree)")
	cmd.Flags().StringVar(&f.background, "background", pipeline.DefaultBackground, "colour behind the views: #rgb, #rrggbb, black, white or none")
	cmd.Flags().BoolVar(&f.inset, "inset", false, "inset PNG fills by the window border")
	cmd.Flags().StringVar(&f.pngEngine, "png-engine", pipeline.PNGEngineImaging, "PNG rasterizer: imaging, or rsvg to rasterize the SVG output")
	cmd.Flags().BoolVar(&f.visibleOnly, "visible-only", false, "omit fully covered views from JSON output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// options builds pipeline options, taking config values for every flag the
// user did not set.
func (f *renderFlags) options(cmd *cobra.Command, cfg config.RenderConfig) (pipeline.Options, error) {
	opts := pipeline.Options{
		Scale:       f.scale,
		Labels:      f.labels,
		Background:  f.background,
		Inset:       f.inset,
		PNGEngine:   f.pngEngine,
		VisibleOnly: f.visibleOnly,
		Refresh:     f.refresh,
	}
	changed := cmd.Flags().Changed

	if !changed("format") && len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	} else {
		parsed, err := pipeline.ParseFormats(f.formats)
		if err != nil {
			return opts, err
		}
		opts.Formats = parsed
	}
	if !changed("scale") && cfg.Scale != 0 {
		opts.Scale = cfg.Scale
	}
	if !changed("labels") {
		opts.Labels = cfg.Labels
	}
	if !changed("background") && cfg.Background != "" {
		opts.Background = cfg.Background
	}
	if !changed("inset") {
		opts.Inset = cfg.Inset
	}
	if !changed("png-engine") && cfg.PNGEngine != "" {
		opts.PNGEngine = cfg.PNGEngine
	}
	return opts, opts.ValidateForRender()
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Render a layout script to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a layout script.

Each view is drawn as a rectangle filled with the colour encoded in the low 24
bits of its handle, inset by the window border. The dot and tree formats draw
the split tree itself as a Graphviz diagram (source and SVG).

Formats, scale, labels and background default to the [render] section of the
config file. Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg.Render)
			if err != nil {
				return err
			}
			opts.ScriptPath = args[0]
			return c.runRender(cmd.Context(), opts, outputBase(flags.output, args[0]), flags.noCache)
		},
	}

	flags.register(cmd, pipeline.FormatSVG)
	return cmd
}

// demoCommand renders the built-in four-view demo layout.
func (c *CLI) demoCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in demo layout",
		Long: `Render the built-in demo layout.

The demo is a 1024x768 workspace holding a blue background view (0xff) with a
magenta view (0xff00ff) on the left half and the right half split into a green
(0x00ff00) and a dark green (0x5522) view. Use --script to save the script for
editing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			// The demo renders PNG unless asked otherwise.
			rc := cfg.Render
			rc.Formats = nil
			opts, err := flags.options(cmd, rc)
			if err != nil {
				return err
			}
			opts.Script = script.Demo()

			if path, _ := cmd.Flags().GetString("script"); path != "" {
				if err := script.WriteFile(path, opts.Script); err != nil {
					return err
				}
				printFile(path)
			}
			return c.runRender(cmd.Context(), opts, outputBase(flags.output, "demo"), flags.noCache)
		},
	}

	flags.register(cmd, pipeline.FormatPNG)
	cmd.Flags().String("script", "", "also write the demo script to this file (.json, .toml, .yaml)")
	return cmd
}

// runRender executes the pipeline and writes one file per format to
// base + extension.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, base string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := base + pipeline.Extension(format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debugf("Generated %s: %d bytes", path, len(result.Artifacts[format]))
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Wrote %s", plural(len(paths), "artifact")))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ViewCount, result.Stats.Depth, result.CacheInfo.RenderHit)
	for _, m := range result.Report.Missed {
		printWarning("op %d: target %s not found, %s not placed", m.Index, m.Op.Target, m.Op.Handle)
	}
	return nil
}
