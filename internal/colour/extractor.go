// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"slices"
)

const (
	// DefaultColourCount is the palette size used when the caller does not ask for one.
	DefaultColourCount = 12

	// MaxColourCount is the largest palette an extractor will produce.
	MaxColourCount = 256
)

// Extractor defines the interface for color extraction algorithms.
type Extractor interface {
	// Extract extracts a color palette from a decoded RGB buffer.
	// The count parameter specifies the maximum number of colors to extract.
	Extract(pixels PixelBuffer, count int) (*Palette, error)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmHistogram buckets pixels by coarse luminance, hue and lightness.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmMedianCut recursively splits the colour-space bounding box.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmKMeans uses k-means clustering with a content-derived seed.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmHistogram,
		AlgorithmMedianCut,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognized.
func NewExtractor(alg Algorithm) (Extractor, error) {
	return ExtractorConfig{Algorithm: alg, ColorCount: DefaultColourCount}.NewExtractor()
}

// Extract runs the default histogram extractor over pixels.
func Extract(pixels PixelBuffer, count int) (*Palette, error) {
	return NewHistogramExtractor().Extract(pixels, count)
}

// ExtractorConfig holds configuration for color extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int

	// MinClusterFraction drops clusters covering less than this share of the
	// image. Zero keeps every non-empty cluster.
	MinClusterFraction float64
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmHistogram,
		ColorCount: DefaultColourCount,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if err := validateCount(c.ColorCount); err != nil {
		return err
	}
	if c.MinClusterFraction < 0 || c.MinClusterFraction >= 1 {
		return fmt.Errorf("%w: minimum cluster fraction must be in [0, 1), got %g", ErrInvalidArgument, c.MinClusterFraction)
	}
	return nil
}

// NewExtractor builds the extractor described by the configuration.
func (c ExtractorConfig) NewExtractor() (Extractor, error) {
	switch c.Algorithm {
	case AlgorithmHistogram:
		e := NewHistogramExtractor()
		e.minFraction = c.MinClusterFraction
		return e, nil
	case AlgorithmMedianCut:
		e := NewMedianCutExtractor()
		e.minFraction = c.MinClusterFraction
		return e, nil
	case AlgorithmKMeans:
		e := NewKMeansExtractor()
		e.minFraction = c.MinClusterFraction
		return e, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
}

func validateCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: color count must be at least 1, got %d", ErrInvalidArgument, count)
	}
	if count > MaxColourCount {
		return fmt.Errorf("%w: color count too large: %d (maximum: %d)", ErrInvalidArgument, count, MaxColourCount)
	}
	return nil
}

// validateInput applies the checks shared by every extractor.
func validateInput(pixels PixelBuffer, count int) error {
	if err := pixels.Validate(); err != nil {
		return err
	}
	return validateCount(count)
}
