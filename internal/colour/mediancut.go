package colour

import (
	"image"
	"image/color"
	"sort"

	quantize "github.com/carbocation/go-quantize"
)

type colourAxis int

const (
	axisRed colourAxis = iota
	axisGreen
	axisBlue
)

// MedianCutExtractor implements the median cut method: the colour-space box
// holding the most pixels is repeatedly split at the population median of
// its widest channel until enough boxes exist. Each box is represented by its
// most populous colour, so every palette colour occurs in the image.
type MedianCutExtractor struct {
	minFraction float64
}

// NewMedianCutExtractor creates a MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{}
}

// colourBox is a set of distinct colours with their bounding box.
type colourBox struct {
	colours    []colourCount
	min, max   RGB
	population uint64
}

func newColourBox(colours []colourCount) colourBox {
	b := colourBox{
		colours: colours,
		min:     RGB{R: 255, G: 255, B: 255},
	}
	for _, c := range colours {
		b.population += c.count
		b.min.R = min(b.min.R, c.rgb.R)
		b.min.G = min(b.min.G, c.rgb.G)
		b.min.B = min(b.min.B, c.rgb.B)
		b.max.R = max(b.max.R, c.rgb.R)
		b.max.G = max(b.max.G, c.rgb.G)
		b.max.B = max(b.max.B, c.rgb.B)
	}
	return b
}

// widest returns the channel with the largest extent. Ties prefer red, then green.
func (b colourBox) widest() colourAxis {
	rspan := b.max.R - b.min.R
	gspan := b.max.G - b.min.G
	bspan := b.max.B - b.min.B

	if rspan >= gspan && rspan >= bspan {
		return axisRed
	} else if gspan >= bspan {
		return axisGreen
	}
	return axisBlue
}

func channel(rgb RGB, axis colourAxis) uint8 {
	switch axis {
	case axisRed:
		return rgb.R
	case axisGreen:
		return rgb.G
	default:
		return rgb.B
	}
}

// split divides the box at the population median along its widest channel.
// Both halves are always non-empty.
func (b colourBox) split() (colourBox, colourBox) {
	axis := b.widest()
	colours := make([]colourCount, len(b.colours))
	copy(colours, b.colours)
	sort.SliceStable(colours, func(i, j int) bool {
		ci, cj := channel(colours[i].rgb, axis), channel(colours[j].rgb, axis)
		if ci != cj {
			return ci < cj
		}
		return colours[i].rgb.packed() < colours[j].rgb.packed()
	})

	half := b.population / 2
	var counted uint64
	i := 0
	for ; i < len(colours)-1; i++ {
		counted += colours[i].count
		if counted >= half {
			i++
			break
		}
	}
	i = max(i, 1)

	return newColourBox(colours[:i]), newColourBox(colours[i:])
}

// Extract extracts up to count dominant colours from pixels.
func (e *MedianCutExtractor) Extract(pixels PixelBuffer, count int) (*Palette, error) {
	if err := validateInput(pixels, count); err != nil {
		return nil, err
	}

	boxes := []colourBox{newColourBox(countColours(pixels))}
	for len(boxes) < count {
		target := -1
		for i, b := range boxes {
			if len(b.colours) < 2 {
				continue
			}
			if target < 0 || b.population > boxes[target].population {
				target = i
			}
		}
		if target < 0 {
			break
		}
		left, right := boxes[target].split()
		boxes[target] = left
		boxes = append(boxes, right)
	}

	clusters := make([]cluster, len(boxes))
	for i, b := range boxes {
		first := b.colours[0].first
		for _, c := range b.colours[1:] {
			first = min(first, c.first)
		}
		clusters[i].add(b.representative(pixels.PixelCount()), b.population, first)
	}

	return rankClusters(clusters, pixels.PixelCount(), count, e.minFraction), nil
}

// representative picks the box colour with the quantizer's mode aggregation.
// Priorities are made unique, population first and earlier appearance second,
// so the choice does not depend on the quantizer's map iteration order.
func (b colourBox) representative(total int) RGB {
	strip := image.NewNRGBA(image.Rect(0, 0, len(b.colours), 1))
	for x, c := range b.colours {
		strip.SetNRGBA(x, 0, color.NRGBA{R: c.rgb.R, G: c.rgb.G, B: c.rgb.B, A: 255})
	}

	scale := uint64(total) + 1
	q := quantize.MedianCutQuantizer{
		Aggregation: quantize.MODE,
		Weighting: func(_ image.Image, x, _ int) uint64 {
			c := b.colours[x]
			return c.count*scale + uint64(total-c.first)
		},
	}
	p := q.Quantize(make(color.Palette, 0, 1), strip)
	return ToRGB(p[0])
}
