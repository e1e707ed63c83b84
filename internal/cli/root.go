// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/version"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract dominant colour palettes from images",
		Long: `Swatch analyses images, extracts their dominant colours together with how
much of the image each colour covers, and renders the palette as a swatch image
saved next to the source.

Settings are read from ~/.config/swatch/config.yaml (or --config), then from
SWATCH_* environment variables (a .env file in the working directory is
honoured), and finally from command-line flags.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/swatch/config.yaml)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newPaletteCmd(opts))

	return rootCmd
}

// logger returns an hclog logger writing to w at the level implied by the
// verbosity flags.
func (o *globalOptions) logger(w io.Writer) hclog.Logger {
	if o.quiet {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "swatch",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}

	level := hclog.Warn
	if o.verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	})
}

// loadConfig reads the configuration and applies any extraction flags the
// user set explicitly on cmd.
func (o *globalOptions) loadConfig(cmd *cobra.Command, ef *extractionFlags) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ef.apply(cmd, cfg)
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
