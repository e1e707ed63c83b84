package render

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPalette is returned when asked to render a palette with no entries.
	ErrEmptyPalette = errors.New("empty palette")

	// ErrInvalidDimensions is returned for non-positive or mismatched raster dimensions.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrIO matches every IOError.
	ErrIO = errors.New("i/o error")
)

// IOError reports a failure to persist a raster.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
