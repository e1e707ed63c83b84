package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/pipeline"
)

// extractOptions holds the flags of the extract command.
type extractOptions struct {
	extraction extractionFlags
	format     string
	output     string
	preview    bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colour palette from an image",
		Long: `Extract the dominant colours of an image and print them, most dominant first,
with the share of the image each one covers.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Extract 12 colours (default) from an image
  swatch extract photo.jpg

  # Extract 5 colours with k-means and print JSON
  swatch extract -c 5 -a kmeans -f json photo.png

  # Save the palette to a file
  swatch extract --output palette.txt photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, global, opts, args[0])
		},
	}

	opts.extraction.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, hex, rgb, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews (default: on when stdout is a terminal)")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, global *globalOptions, opts *extractOptions, imagePath string) error {
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	cfg, err := global.loadConfig(cmd, &opts.extraction)
	if err != nil {
		return err
	}
	if err := cfg.ExtractorConfig().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := global.logger(cmd.ErrOrStderr())
	popts := pipeline.DefaultOptions()
	popts.Extractor = cfg.ExtractorConfig()
	popts.Logger = log

	res, err := pipeline.Extract(cmd.Context(), imagePath, popts)
	if err != nil {
		return err
	}

	preview := opts.preview
	if !cmd.Flags().Changed("preview") {
		preview = opts.output == "" && isTerminal(cmd.OutOrStdout())
	}

	output, err := formatPalette(res.Palette, opts.format, preview)
	if err != nil {
		return err
	}

	if opts.output != "" {
		log.Debug("writing output", "path", opts.output)
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "text", "":
		return palette.StringWithPreview(showPreview), nil
	case "hex":
		return formatEntries(palette, showPreview, func(rgb colour.RGB) string { return rgb.Hex() }), nil
	case "rgb":
		return formatEntries(palette, showPreview, colour.RGB.String), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, rgb, json)", format)
	}
}

// formatEntries writes one "<colour> <proportion>" line per entry.
func formatEntries(palette *colour.Palette, showPreview bool, label func(colour.RGB) string) string {
	var sb strings.Builder
	for _, e := range palette.Entries {
		if showPreview {
			share := fmt.Sprintf("%.0f%%", e.Proportion*100)
			sb.WriteString(colour.ColourPreviewWithText(e.Colour, share, 6) + " ")
		}
		fmt.Fprintf(&sb, "%s %.4f\n", label(e.Colour), e.Proportion)
	}
	return sb.String()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
