// Package pipeline wires image loading, colour extraction and swatch
// rendering together for one or many source images.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/render"
)

// Options configures a pipeline run.
type Options struct {
	Extractor colour.ExtractorConfig
	Width     int
	Height    int

	// Format forces the swatch container. Empty derives it from the source.
	Format render.Format
	// OutputDir places swatches in a different directory. Empty writes them
	// next to their source image.
	OutputDir string

	Loader image.Loader
	Logger hclog.Logger
}

// DefaultOptions returns options matching the package defaults.
func DefaultOptions() Options {
	return Options{
		Extractor: colour.DefaultExtractorConfig(),
		Width:     render.DefaultWidth,
		Height:    render.DefaultHeight,
	}
}

func (o Options) withDefaults() Options {
	if o.Loader == nil {
		o.Loader = image.NewFileLoader()
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// Result describes the outcome for one source image.
type Result struct {
	Source  string
	Output  string
	Width   int
	Height  int
	Palette *colour.Palette
	// Skipped is set when the source was not an image and nothing was done.
	Skipped bool
	Err     error
}

// OutputPath returns where the swatch for source is written.
func OutputPath(source string, opts Options) string {
	out := render.PalettePath(source)
	if opts.Format != "" {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + opts.Format.Extension()
	}
	if opts.OutputDir != "" {
		out = filepath.Join(opts.OutputDir, filepath.Base(out))
	}
	return out
}

// Extract loads source and extracts its palette without rendering a swatch.
func Extract(ctx context.Context, source string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With("source", source)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extractor, err := opts.Extractor.NewExtractor()
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	log.Debug("loading image")
	pixels, bounds, err := image.LoadPixels(opts.Loader, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	log.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("extracting colours", "algorithm", opts.Extractor.Algorithm, "count", opts.Extractor.ColorCount)
	palette, err := extractor.Extract(pixels, opts.Extractor.ColorCount)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	log.Debug("colours extracted", "colours", palette.Len(), "coverage", palette.Coverage())

	return &Result{
		Source:  source,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Palette: palette,
	}, nil
}

// Run extracts the palette of source and writes its swatch.
func Run(ctx context.Context, source string, opts Options) (*Result, error) {
	return run(ctx, source, OutputPath(source, opts), opts)
}

func run(ctx context.Context, source, output string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	res, err := Extract(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	raster, err := render.Render(res.Palette, opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to render palette: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := render.WriteRaster(raster, opts.Width, opts.Height, output); err != nil {
		return nil, fmt.Errorf("failed to write swatch: %w", err)
	}
	opts.Logger.Info("palette saved", "source", source, "output", output, "colours", res.Palette.Len())

	res.Output = output
	return res, nil
}
