package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/render"
)

// algorithmValue is a pflag.Value restricted to the known extraction algorithms.
type algorithmValue colour.Algorithm

var _ pflag.Value = (*algorithmValue)(nil)

func (a *algorithmValue) String() string { return string(*a) }

func (a *algorithmValue) Set(s string) error {
	if !colour.IsValidAlgorithm(colour.Algorithm(s)) {
		return fmt.Errorf("must be one of %v", colour.ValidAlgorithms())
	}
	*a = algorithmValue(s)
	return nil
}

func (a *algorithmValue) Type() string { return "algorithm" }

// formatValue is a pflag.Value for swatch container formats.
type formatValue render.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	format, err := render.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(format)
	return nil
}

func (f *formatValue) Type() string { return "format" }

// extractionFlags are the colour extraction flags shared by extract and palette.
type extractionFlags struct {
	colours    int
	algorithm  algorithmValue
	minCluster float64
}

func (ef *extractionFlags) register(flags *pflag.FlagSet) {
	ef.algorithm = algorithmValue(colour.AlgorithmHistogram)
	flags.IntVarP(&ef.colours, "colours", "c", colour.DefaultColourCount, fmt.Sprintf("number of colours to extract (1-%d)", colour.MaxColourCount))
	flags.VarP(&ef.algorithm, "algorithm", "a", fmt.Sprintf("extraction algorithm %v", colour.ValidAlgorithms()))
	flags.Float64Var(&ef.minCluster, "min-cluster", 0, "drop colours covering less than this fraction of the image (0-1)")
}

// apply copies explicitly set flags over the loaded configuration.
func (ef *extractionFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("colours") {
		cfg.Extraction.Colours = ef.colours
	}
	if flags.Changed("algorithm") {
		cfg.Extraction.Algorithm = ef.algorithm.String()
	}
	if flags.Changed("min-cluster") {
		cfg.Extraction.MinClusterFraction = ef.minCluster
	}
}
