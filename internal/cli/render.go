package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/pipeline"
)

// stdinArg reads the diagram from standard input.
const stdinArg = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	boxes    bool   // overlay margin/padding/content outlines
	measurer string // text measurer: opentype or estimate
	title    string // document title override
	noCache  bool   // bypass the artifact cache
	refresh  bool   // re-render and overwrite cached artifacts
}

// renderJob is one input file and what became of it.
type renderJob struct {
	path   string
	result *pipeline.Result
	files  []string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render diagrams to SVG, PNG, PDF, JSON or DOT",
		Long: `Render one or more TOML diagrams. Each input writes one file per format,
named after the input (diagram.toml -> diagram.svg). Files are rendered
concurrently. Use "-" to read a diagram from stdin; with a single format and
no --output it is written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringSliceP("format", "f", []string{pipeline.FormatSVG}, "output format(s): svg, png, pdf, json, dot")
	cmd.Flags().StringP("output", "o", "", "output directory (default: next to each input)")
	cmd.Flags().Float64("scale", pipeline.DefaultScale, "raster scale for png output")
	cmd.Flags().BoolVar(&opts.boxes, "boxes", false, "overlay margin, padding and content box outlines")
	cmd.Flags().StringVar(&opts.measurer, "measurer", pipeline.DefaultMeasurer, "text measurer: opentype, estimate")
	cmd.Flags().StringVar(&opts.title, "title", "", "override the document title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite cached artifacts")

	c.bindFlag("render.formats", cmd.Flags(), "format")
	c.bindFlag("render.output_dir", cmd.Flags(), "output")
	c.bindFlag("render.scale", cmd.Flags(), "scale")

	return cmd
}

// runRender renders every input concurrently and reports in argument order.
func (c *CLI) runRender(ctx context.Context, paths []string, opts renderOpts) error {
	formats := parseFormats(c.Config.Render.Formats)
	if err := errors.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if len(paths) > 1 && slices.Contains(paths, stdinArg) {
		return errors.New(errors.ErrCodeInvalidInput, "stdin (%q) cannot be combined with other inputs", stdinArg)
	}

	toStdout := len(paths) == 1 && paths[0] == stdinArg && len(formats) == 1 && c.Config.Render.OutputDir == ""

	jobs := make([]*renderJob, len(paths))
	spinner := newSpinnerWithContext(ctx, renderMessage(paths))
	if !toStdout {
		spinner.Start()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		jobs[i] = &renderJob{path: path}
		job := jobs[i]
		g.Go(func() error {
			return c.renderOne(gctx, runner, job, formats, opts, toStdout)
		})
	}
	err = g.Wait()
	switch {
	case err != nil && spinner.Cancelled():
		spinner.Stop()
		return ctx.Err()
	case err != nil:
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if toStdout {
		return nil
	}

	for _, job := range jobs {
		printSuccess("Rendered %s", job.path)
		printStats(job.result.Stats.Elements, len(job.files), job.result.CacheInfo.AllHit())
		if n := job.result.Stats.PendingTexts; n > 0 {
			printWarning("%d text element(s) measured with estimates", n)
		}
		for _, f := range job.files {
			printFile(f)
		}
	}
	return nil
}

func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, job *renderJob, formats []string, opts renderOpts, toStdout bool) error {
	popts := pipeline.Options{
		Formats:  formats,
		Scale:    c.Config.Render.Scale,
		Boxes:    opts.boxes,
		Measurer: opts.measurer,
		Title:    opts.title,
		Refresh:  opts.refresh,
		Logger:   loggerFromContext(ctx),
	}
	if job.path == stdinArg {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		popts.Source = src
	} else {
		popts.Path = job.path
	}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	job.result = result

	if toStdout {
		_, err := stdout.Write(result.Artifacts[formats[0]])
		return err
	}
	for _, format := range formats {
		out := outputPath(job.path, c.Config.Render.OutputDir, format)
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(out, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		job.files = append(job.files, out)
	}
	return nil
}

// outputPath derives <dir>/<input base>.<format>. Without an output directory
// the file lands next to its input.
func outputPath(input, outDir, format string) string {
	base := "diagram"
	if input != stdinArg {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if outDir == "" {
		outDir = "."
		if input != stdinArg {
			outDir = filepath.Dir(input)
		}
	}
	return filepath.Join(outDir, base+"."+format)
}

func renderMessage(paths []string) string {
	if len(paths) == 1 {
		return fmt.Sprintf("Rendering %s...", paths[0])
	}
	return fmt.Sprintf("Rendering %d diagrams...", len(paths))
}
