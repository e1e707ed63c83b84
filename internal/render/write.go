package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a lossless raster container.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ValidFormats returns the containers a swatch can be written as.
func ValidFormats() []Format {
	return []Format{FormatPNG, FormatBMP, FormatTIFF}
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tiff"
	default:
		return ".png"
	}
}

// ParseFormat converts a format name or extension into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported swatch format: %s (supported: %v)", s, ValidFormats())
	}
}

// FormatFromPath picks the container from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("unsupported swatch format: %s has no extension", path)
	}
	return ParseFormat(ext)
}

// PalettePath derives the swatch path for a source image: the same directory
// and stem with a "_palette" suffix. The source extension is kept when it is a
// container we can write losslessly, otherwise ".png" is used.
func PalettePath(source string) string {
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(source, ext)
	if _, err := ParseFormat(ext); err != nil {
		ext = FormatPNG.Extension()
	}
	return stem + "_palette" + ext
}

// Encode writes the raster to w in the given container format.
func Encode(w io.Writer, r *Raster, format Format) error {
	img := r.Image()
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported swatch format: %s", format)
	}
}

// WriteRaster encodes the raster in the container implied by the path
// extension and writes it to path. The data is written to a temporary file in
// the same directory and renamed into place, so a failed write leaves nothing
// behind at path. New files get mode 0666 minus the process umask. Write
// failures are returned as *IOError and not retried.
func WriteRaster(r *Raster, width, height int, path string) error {
	if err := CheckDimensions(width, height); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidDimensions)
	}
	if r.Width != width || r.Height != height || len(r.Pix) != width*height*bytesPerPixel {
		return fmt.Errorf("%w: raster is %dx%d (%d bytes), asked to write %dx%d",
			ErrInvalidDimensions, r.Width, r.Height, len(r.Pix), width, height)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmp, err := createTemp(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, r, format); err != nil {
		tmp.Close()
		return &IOError{Op: "encode", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	committed = true
	return nil
}

// createTemp creates an empty sibling of path for WriteRaster to fill. The
// file is opened with mode 0666, leaving the final permissions to the umask.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	for range 100 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".tmp") // #nosec G404 -- temp file suffix
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666) // #nosec G302 G304 -- swatch images are meant to be readable
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no unused temporary name for %s", path)
}

// Decode reads a swatch image back, for verification and tests.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 - Caller-chosen swatch path
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatBMP:
		return bmp.Decode(f)
	case FormatTIFF:
		return tiff.Decode(f)
	default:
		return png.Decode(f)
	}
}
