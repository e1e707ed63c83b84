// Package colour provides colour extraction and palette generation functionality.
package colour

import "fmt"

// Channels is the number of samples per pixel in a PixelBuffer.
const Channels = 3

// PixelBuffer is a flat, row-major RGB buffer with three bytes per pixel and no
// row padding. Extractors only ever read from it.
type PixelBuffer []uint8

// Validate checks that the buffer is non-empty and holds whole pixels.
func (p PixelBuffer) Validate() error {
	if len(p) == 0 {
		return ErrEmptyImage
	}
	if len(p)%Channels != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of %d", ErrMalformedBuffer, len(p), Channels)
	}
	return nil
}

// PixelCount returns the number of whole pixels in the buffer.
func (p PixelBuffer) PixelCount() int {
	return len(p) / Channels
}

// At returns the colour of the i-th pixel.
func (p PixelBuffer) At(i int) RGB {
	o := i * Channels
	return RGB{R: p[o], G: p[o+1], B: p[o+2]}
}
