package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/pipeline"
	"github.com/jmylchreest/swatch/internal/render"
)

// paletteOptions holds the flags of the palette command.
type paletteOptions struct {
	extraction extractionFlags
	width      int
	height     int
	format     formatValue
	outputDir  string
	jobs       int
}

func newPaletteCmd(global *globalOptions) *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette <image|directory>...",
		Short: "Render palette swatch images",
		Long: `Extract the dominant colours of each image and save them as a swatch image:
one vertical band per colour, most dominant on the left. The swatch is written
next to its source as <name>_palette.<ext>. PNG, BMP and TIFF sources keep their
container; other sources get a PNG swatch unless --format says otherwise.

Directories are scanned (non-recursively) for images. Files that are not images
are skipped.

Examples:
  # Write photo_palette.png next to photo.png
  swatch palette photo.png

  # Render every image in a directory with 8 colours, 4 at a time
  swatch palette -c 8 -j 4 ~/Pictures/wallpapers

  # Tall TIFF swatches into a separate directory
  swatch palette --height 400 --format tiff -o swatches/ photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, global, opts, args)
		},
	}

	opts.extraction.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultWidth, "swatch width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", render.DefaultHeight, "swatch height in pixels")
	cmd.Flags().Var(&opts.format, "format", fmt.Sprintf("swatch container %v (default: same as source)", render.ValidFormats()))
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for swatches (default: next to each source)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "images processed in parallel (default: number of CPUs)")

	return cmd
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, global *globalOptions, opts *paletteOptions, args []string) error {
	cfg, err := global.loadConfig(cmd, &opts.extraction)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Swatch.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Swatch.Height = opts.height
	}
	if flags.Changed("format") {
		cfg.Swatch.Format = opts.format.String()
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	sources, err := image.ExpandPaths(args)
	if err != nil {
		return err
	}

	log := global.logger(cmd.ErrOrStderr())
	popts := pipeline.DefaultOptions()
	popts.Extractor = cfg.ExtractorConfig()
	popts.Width = cfg.Swatch.Width
	popts.Height = cfg.Swatch.Height
	popts.OutputDir = opts.outputDir
	popts.Logger = log
	if cfg.Swatch.Format != "" {
		format, err := render.ParseFormat(cfg.Swatch.Format)
		if err != nil {
			return err
		}
		popts.Format = format
	}

	log.Debug("generating palettes", "images", len(sources), "jobs", cfg.Jobs)
	results := pipeline.RunBatch(cmd.Context(), sources, cfg.Jobs, popts)

	if !global.quiet {
		fmt.Fprint(cmd.OutOrStdout(), summarise(results))
	}

	if failed := pipeline.Failed(results); len(failed) > 0 {
		if len(results) == 1 {
			return failed[0].Err
		}
		return fmt.Errorf("%d of %d images failed", len(failed), len(results))
	}
	return nil
}

// summarise renders one table row per source.
func summarise(results []pipeline.Result) string {
	table := NewTable([]string{"SOURCE", "SWATCH", "COLOURS", "STATUS"})
	for _, r := range results {
		switch {
		case r.Skipped:
			table.AddRow([]string{r.Source, "-", "-", "skipped (not an image)"})
		case r.Err != nil:
			table.AddRow([]string{r.Source, "-", "-", "error: " + r.Err.Error()})
		default:
			table.AddRow([]string{r.Source, r.Output, strconv.Itoa(r.Palette.Len()), "ok"})
		}
	}
	return table.Render()
}
