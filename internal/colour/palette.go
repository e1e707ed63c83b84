// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as a fully opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#rrggbb" or "rrggbb" into an RGB value.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Entry is one dominant colour and the fraction of all source pixels it covers.
type Entry struct {
	Colour     RGB     `json:"rgb"`
	Proportion float64 `json:"proportion"`
}

// Palette is a ranked list of dominant colours, most dominant first.
// The proportions sum to at most 1; pixels dropped during clustering are not
// redistributed.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a new Palette with the given entries.
func NewPalette(entries []Entry) *Palette {
	return &Palette{
		Entries: entries,
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// Coverage returns the sum of all entry proportions.
func (p *Palette) Coverage() float64 {
	if p.Len() == 0 {
		return 0
	}
	proportions := make([]float64, len(p.Entries))
	for i, e := range p.Entries {
		proportions[i] = e.Proportion
	}
	return floats.Sum(proportions)
}

// ToHex converts the palette colors to hex strings.
// Returns a slice of hex color codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexColors[i] = e.Colour.Hex()
	}
	return hexColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Proportion float64 `json:"proportion"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count    int         `json:"count"`
	Coverage float64     `json:"coverage"`
	Colors   []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Entries))
	for i, e := range p.Entries {
		colors[i] = ColorJSON{
			Hex:        e.Colour.Hex(),
			RGB:        e.Colour,
			Proportion: e.Proportion,
		}
	}

	paletteJSON := PaletteJSON{
		Count:    len(p.Entries),
		Coverage: p.Coverage(),
		Colors:   colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	return p.StringWithPreview(false)
}

// StringWithPreview renders the palette one colour per line, optionally with
// an ANSI colour block in front of each entry.
func (p *Palette) StringWithPreview(preview bool) string {
	if p.Len() == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors (%.1f%% coverage):\n", len(p.Entries), p.Coverage()*100)
	for i, e := range p.Entries {
		if preview {
			fmt.Fprintf(&sb, "  %2d: %s %-18s %6.2f%%\n", i+1, FormatColourWithPreview(e.Colour, 6), e.Colour.String(), e.Proportion*100)
			continue
		}
		fmt.Fprintf(&sb, "  %2d: %s %-18s %6.2f%%\n", i+1, e.Colour.Hex(), e.Colour.String(), e.Proportion*100)
	}
	return sb.String()
}

// Get returns the entry at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (Entry, error) {
	if index < 0 || index >= p.Len() {
		return Entry{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, p.Len())
	}
	return p.Entries[index], nil
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
