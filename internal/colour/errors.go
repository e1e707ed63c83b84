// Package colour provides colour extraction and palette generation functionality.
package colour

import "errors"

var (
	// ErrMalformedBuffer is returned when a pixel buffer is not a whole number of RGB pixels.
	ErrMalformedBuffer = errors.New("malformed pixel buffer")

	// ErrInvalidArgument is returned for an out of range colour count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyImage is returned when the pixel buffer holds no pixels.
	ErrEmptyImage = errors.New("empty image")
)
