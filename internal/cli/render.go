package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/pipeline"
)

// defaultBase is the output base name when no scene file is given.
const defaultBase = "rack"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "svg", "png", "pdf", "json"
	scale   float64  // pixels per scene unit
	margin  float64  // margin around the rack in scene units
	title   string   // SVG title
	cache   cacheFlags
}

// renderCommand creates the render command for drawing a scene.
//
// Without a scene file the default scene is drawn: 32 books with the
// classic size, edge and obi distributions.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var scn sceneFlags
	opts := renderOpts{
		scale:  pipeline.DefaultScale,
		margin: pipeline.DefaultMargin,
	}

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene to SVG, PNG, PDF or JSON",
		Long: `Render a scene to SVG, PNG, PDF or JSON.

The scene file may be TOML, YAML or JSON and only needs the values that differ
from the default scene. Flags override values from the file.

Results are cached locally, so rendering the same scene twice is instant.`,
		Example: `  # Default scene as SVG
  bookrack render

  # A scene file with another seed, as PNG and PDF
  bookrack render shelf.toml --seed 7 -f png,pdf

  # Write a single SVG to stdout
  bookrack render -o - > rack.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := scn.load(cmd, input)
			if err != nil {
				return err
			}
			if input == "" {
				input = defaultBase
			}
			return c.runRender(cmd.Context(), pipeline.Options{Scene: &cfg}, input, opts)
		},
	}

	scn.register(cmd)
	addRenderFlags(cmd, &opts, &formatsStr)
	cmd.Flags().BoolVar(&opts.cache.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.cache.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.cache.redisURL, "redis", "", "redis url for a shared cache (default $"+redisEnv+")")

	return cmd
}

// addRenderFlags registers the output flags shared by render and sample.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts, formatsStr *string) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per scene unit")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "margin around the rack in scene units")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG title")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, input string, opts renderOpts) error {
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts.Formats = opts.formats
	popts.Scale = opts.scale
	popts.Margin = opts.margin
	popts.Title = opts.title
	popts.Refresh = opts.cache.refresh
	popts.Logger = loggerFromContext(ctx)

	toStdout := opts.output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, "Rendering rack...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   popts.Formats,
		input:     input,
		output:    opts.output,
		stats:     result.Stats,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams bundles what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes each artifact to its own file.
// A single format goes to opts.output verbatim ("-" is stdout). Multiple
// formats go to base.format where base comes from basePath.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
		}
		return writeFile("", p.artifacts[p.formats[0]])
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := basePath(p.output, p.input) + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", plural(p.stats.Books, "book"))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
