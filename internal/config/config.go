// Package config loads swatch settings from defaults, a YAML file and the
// environment. Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/render"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWATCH_"

// Config holds the settings shared by the extract and palette commands.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Swatch     SwatchConfig     `yaml:"swatch"`
	// Jobs bounds how many images are processed at once.
	Jobs int `yaml:"jobs"`
}

// ExtractionConfig selects and tunes the colour extractor.
type ExtractionConfig struct {
	Algorithm          string  `yaml:"algorithm"`
	Colours            int     `yaml:"colours"`
	MinClusterFraction float64 `yaml:"min_cluster_fraction"`
}

// SwatchConfig controls the rendered palette image.
type SwatchConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Format forces the swatch container; empty keeps the source extension.
	Format string `yaml:"format"`
}

// Defaults returns a Config populated with sensible default values.
func Defaults() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Algorithm: string(colour.AlgorithmHistogram),
			Colours:   colour.DefaultColourCount,
		},
		Swatch: SwatchConfig{
			Width:  render.DefaultWidth,
			Height: render.DefaultHeight,
		},
		Jobs: runtime.NumCPU(),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "swatch", "config.yaml"), nil
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in that order. An empty path tries DefaultPath and tolerates
// its absence; an explicit path must exist. Variables from a .env file in the
// working directory are used when the process environment does not set them.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	dotenv, err := godotenv.Read(".env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from SWATCH_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "ALGORITHM"); ok {
		c.Extraction.Algorithm = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		c.Swatch.Format = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"COLOURS", &c.Extraction.Colours},
		{"WIDTH", &c.Swatch.Width},
		{"HEIGHT", &c.Swatch.Height},
		{"JOBS", &c.Jobs},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, f.key, v, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvPrefix + "MIN_CLUSTER_FRACTION"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMIN_CLUSTER_FRACTION=%q: %w", EnvPrefix, v, err)
		}
		c.Extraction.MinClusterFraction = f
	}
	return nil
}

// ExtractorConfig converts the extraction settings for the colour package.
func (c *Config) ExtractorConfig() colour.ExtractorConfig {
	return colour.ExtractorConfig{
		Algorithm:          colour.Algorithm(c.Extraction.Algorithm),
		ColorCount:         c.Extraction.Colours,
		MinClusterFraction: c.Extraction.MinClusterFraction,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.ExtractorConfig().Validate(); err != nil {
		return fmt.Errorf("invalid extraction config: %w", err)
	}
	if err := render.CheckDimensions(c.Swatch.Width, c.Swatch.Height); err != nil {
		return fmt.Errorf("invalid swatch size: %w", err)
	}
	if c.Swatch.Format != "" {
		if _, err := render.ParseFormat(c.Swatch.Format); err != nil {
			return err
		}
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}
