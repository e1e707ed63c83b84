package colour

import (
	"github.com/lucasb-eyer/go-colorful"
)

// HistogramExtractor groups pixels into buckets keyed by the top bits of
// their luminance, hue and lightness. Each bucket reports the mean colour of
// its pixels, so two visually similar shades share a palette slot.
type HistogramExtractor struct {
	// bits is how many of the most significant bits of each key component
	// are kept. Two bits gives 64 buckets.
	bits        uint
	minFraction float64
}

// NewHistogramExtractor creates a HistogramExtractor with default settings.
func NewHistogramExtractor() *HistogramExtractor {
	return &HistogramExtractor{bits: 2}
}

// Extract extracts up to count dominant colours from pixels.
func (e *HistogramExtractor) Extract(pixels PixelBuffer, count int) (*Palette, error) {
	if err := validateInput(pixels, count); err != nil {
		return nil, err
	}

	buckets := make(map[uint32]*cluster)
	for _, c := range countColours(pixels) {
		key := e.bucketKey(c.rgb)
		b, ok := buckets[key]
		if !ok {
			b = &cluster{}
			buckets[key] = b
		}
		b.add(c.rgb, c.count, c.first)
	}

	clusters := make([]cluster, 0, len(buckets))
	for _, b := range buckets {
		clusters = append(clusters, *b)
	}

	return rankClusters(clusters, pixels.PixelCount(), count, e.minFraction), nil
}

// bucketKey packs the significant bits of luminance, hue and lightness.
func (e *HistogramExtractor) bucketKey(rgb RGB) uint32 {
	y := (2126*uint32(rgb.R) + 7152*uint32(rgb.G) + 722*uint32(rgb.B)) / 10000

	h, _, l := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}.Hsl()
	hue := toByte(h / 360)
	light := toByte(l)

	shift := 8 - e.bits
	return (y>>shift)<<(2*e.bits) | (hue>>shift)<<e.bits | light>>shift
}

// toByte maps v in [0, 1] onto [0, 255].
func toByte(v float64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint32(v*255 + 0.5)
}
