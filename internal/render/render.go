// Package render draws palettes as swatch images and writes them to disk.
package render

import (
	"fmt"
	"image"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// DefaultWidth is the swatch width used when the caller does not set one.
	DefaultWidth = 500

	// DefaultHeight is the swatch height used when the caller does not set one.
	DefaultHeight = 100

	// MaxPixels bounds width*height of a swatch (1 GiB of RGBA samples).
	MaxPixels = 1 << 28

	// bytesPerPixel is the RGBA sample count per raster pixel.
	bytesPerPixel = 4
)

// CheckDimensions reports whether a width x height raster can be allocated.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, width, height, MaxPixels)
	}
	return nil
}

// Raster is a fully materialised RGBA image, four bytes per pixel in
// row-major order with no padding.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// Image wraps the raster pixels as an *image.NRGBA without copying.
// Every swatch pixel is opaque, so straight and premultiplied alpha agree.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Band returns the half-open column range [start, end) of band i of n across
// width columns. Bands tile the width exactly for any n <= width; when n > width
// some bands are empty.
func Band(width, i, n int) (start, end int) {
	return width * i / n, width * (i + 1) / n
}

// Render draws one vertical band per palette entry, most dominant on the left,
// each band filled with its colour at full opacity over the full height.
func Render(p *colour.Palette, width, height int) (*Raster, error) {
	if p.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	r := &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*bytesPerPixel),
	}

	n := p.Len()
	stride := width * bytesPerPixel
	for i, entry := range p.Entries {
		start, end := Band(width, i, n)
		if start == end {
			continue
		}

		// Fill the first row of the band, then copy it down.
		row := r.Pix[start*bytesPerPixel : end*bytesPerPixel]
		for x := 0; x < len(row); x += bytesPerPixel {
			row[x] = entry.Colour.R
			row[x+1] = entry.Colour.G
			row[x+2] = entry.Colour.B
			row[x+3] = 255
		}
		for y := 1; y < height; y++ {
			o := y * stride
			copy(r.Pix[o+start*bytesPerPixel:o+end*bytesPerPixel], row)
		}
	}

	return r, nil
}
