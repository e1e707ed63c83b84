package colour

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-9

// solid returns a buffer of n pixels of one colour.
func solid(c RGB, n int) PixelBuffer {
	buf := make(PixelBuffer, 0, n*Channels)
	for range n {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

// concat joins buffers in order.
func concat(parts ...PixelBuffer) PixelBuffer {
	var out PixelBuffer
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// noisy returns a reproducible buffer with many distinct colours.
func noisy(n int) PixelBuffer {
	buf := make(PixelBuffer, n*Channels)
	state := uint32(2463534242)
	for i := range buf {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		buf[i] = uint8(state)
	}
	return buf
}

func allExtractors(t *testing.T) map[Algorithm]Extractor {
	t.Helper()
	out := make(map[Algorithm]Extractor)
	for _, alg := range ValidAlgorithms() {
		e, err := NewExtractor(alg)
		if err != nil {
			t.Fatalf("NewExtractor(%s) error = %v", alg, err)
		}
		out[alg] = e
	}
	return out
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		wantErr bool
	}{
		{alg: AlgorithmHistogram},
		{alg: AlgorithmMedianCut},
		{alg: AlgorithmKMeans},
		{alg: "octree", wantErr: true},
		{alg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			e, err := NewExtractor(tt.alg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor(%q) error = %v, wantErr %v", tt.alg, err, tt.wantErr)
			}
			if !tt.wantErr && e == nil {
				t.Errorf("NewExtractor(%q) returned nil extractor", tt.alg)
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ExtractorConfig
		wantErr bool
	}{
		{name: "default", config: DefaultExtractorConfig()},
		{name: "zero colours", config: ExtractorConfig{Algorithm: AlgorithmHistogram, ColorCount: 0}, wantErr: true},
		{name: "too many colours", config: ExtractorConfig{Algorithm: AlgorithmHistogram, ColorCount: 257}, wantErr: true},
		{name: "unknown algorithm", config: ExtractorConfig{Algorithm: "dominant", ColorCount: 4}, wantErr: true},
		{name: "negative fraction", config: ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: 4, MinClusterFraction: -0.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if DefaultExtractorConfig().ColorCount != 12 {
		t.Errorf("default colour count = %d, want 12", DefaultExtractorConfig().ColorCount)
	}
}

func TestExtractDegenerateInputs(t *testing.T) {
	tests := []struct {
		name    string
		pixels  PixelBuffer
		count   int
		wantErr error
	}{
		{name: "empty buffer", pixels: PixelBuffer{}, count: 5, wantErr: ErrEmptyImage},
		{name: "nil buffer", pixels: nil, count: 5, wantErr: ErrEmptyImage},
		{name: "partial pixel", pixels: PixelBuffer{1, 2, 3, 4}, count: 5, wantErr: ErrMalformedBuffer},
		{name: "zero colours", pixels: solid(RGB{R: 1}, 4), count: 0, wantErr: ErrInvalidArgument},
		{name: "negative colours", pixels: solid(RGB{R: 1}, 4), count: -3, wantErr: ErrInvalidArgument},
	}

	for alg, e := range allExtractors(t) {
		for _, tt := range tests {
			t.Run(string(alg)+"/"+tt.name, func(t *testing.T) {
				palette, err := e.Extract(tt.pixels, tt.count)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
				}
				if palette != nil {
					t.Errorf("Extract() returned a palette alongside an error")
				}
			})
		}
	}
}

func TestExtractMonochrome(t *testing.T) {
	want := RGB{R: 200, G: 50, B: 10}
	pixels := solid(want, 64)

	for alg, e := range allExtractors(t) {
		t.Run(string(alg), func(t *testing.T) {
			palette, err := e.Extract(pixels, 5)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if palette.Len() != 1 {
				t.Fatalf("Extract() returned %d colours, want 1", palette.Len())
			}
			if got := palette.Entries[0].Colour; got != want {
				t.Errorf("colour = %+v, want %+v", got, want)
			}
			if math.Abs(palette.Entries[0].Proportion-1) > epsilon {
				t.Errorf("proportion = %f, want 1", palette.Entries[0].Proportion)
			}
		})
	}

	// The package-level helper uses the default extractor.
	palette, err := Extract(pixels, 5)
	if err != nil || palette.Len() != 1 || palette.Entries[0].Colour != want {
		t.Errorf("Extract() = %v, %v; want single %+v", palette, err, want)
	}
}

func TestExtractTwoColourSplit(t *testing.T) {
	red := RGB{R: 255}
	blue := RGB{B: 255}
	pixels := concat(solid(red, 500), solid(blue, 500))

	for alg, e := range allExtractors(t) {
		t.Run(string(alg), func(t *testing.T) {
			palette, err := e.Extract(pixels, 2)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if palette.Len() != 2 {
				t.Fatalf("Extract() returned %d colours, want 2", palette.Len())
			}
			if palette.Entries[0].Colour != red || palette.Entries[1].Colour != blue {
				t.Errorf("colours = %v, want [red blue]", palette.ToHex())
			}
			for i, entry := range palette.Entries {
				if math.Abs(entry.Proportion-0.5) > epsilon {
					t.Errorf("entry %d proportion = %f, want 0.5", i, entry.Proportion)
				}
			}
		})
	}
}

func TestExtractProperties(t *testing.T) {
	pixels := concat(noisy(3000), solid(RGB{R: 30, G: 30, B: 30}, 2000), solid(RGB{R: 240, G: 220, B: 10}, 900))

	for alg, e := range allExtractors(t) {
		for _, count := range []int{1, 3, 12, 40} {
			t.Run(string(alg), func(t *testing.T) {
				first, err := e.Extract(pixels, count)
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				second, err := e.Extract(pixels, count)
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}

				if !reflect.DeepEqual(first, second) {
					t.Errorf("Extract() is not deterministic:\n%v\n%v", first, second)
				}
				if first.Len() == 0 || first.Len() > count {
					t.Errorf("Extract() returned %d colours, want 1..%d", first.Len(), count)
				}
				if cov := first.Coverage(); cov > 1+epsilon {
					t.Errorf("Coverage() = %f, exceeds 1", cov)
				}
				for i := 1; i < first.Len(); i++ {
					if first.Entries[i].Proportion > first.Entries[i-1].Proportion {
						t.Errorf("entry %d proportion %f > entry %d proportion %f",
							i, first.Entries[i].Proportion, i-1, first.Entries[i-1].Proportion)
					}
				}
			})
		}
	}
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	pixels := concat(noisy(500), solid(RGB{G: 255}, 100))
	original := append(PixelBuffer(nil), pixels...)

	for alg, e := range allExtractors(t) {
		if _, err := e.Extract(pixels, 6); err != nil {
			t.Fatalf("%s: Extract() error = %v", alg, err)
		}
		if !reflect.DeepEqual(pixels, original) {
			t.Fatalf("%s: Extract() modified the pixel buffer", alg)
		}
	}
}

func TestMinClusterFraction(t *testing.T) {
	pixels := concat(solid(RGB{R: 255}, 90), solid(RGB{B: 255}, 10))

	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			config := ExtractorConfig{Algorithm: alg, ColorCount: 4, MinClusterFraction: 0.2}
			if err := config.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			e, err := config.NewExtractor()
			if err != nil {
				t.Fatalf("NewExtractor() error = %v", err)
			}

			palette, err := e.Extract(pixels, 4)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if palette.Len() != 1 {
				t.Fatalf("Extract() returned %d colours, want 1", palette.Len())
			}
			// Dropped pixels must not be folded into the surviving cluster.
			if math.Abs(palette.Entries[0].Proportion-0.9) > epsilon {
				t.Errorf("proportion = %f, want 0.9", palette.Entries[0].Proportion)
			}
		})
	}
}

func TestKMeansSeparatesGroups(t *testing.T) {
	var pixels PixelBuffer
	groups := []RGB{{R: 220, G: 20, B: 20}, {R: 20, G: 200, B: 40}, {R: 30, G: 40, B: 210}}
	sizes := []int{600, 300, 100}
	for g, base := range groups {
		for i := range sizes[g] {
			d := uint8(i % 5)
			pixels = append(pixels, base.R+d, base.G+d, base.B+d)
		}
	}

	palette, err := NewKMeansExtractor().Extract(pixels, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 3 {
		t.Fatalf("Extract() returned %d colours, want 3", palette.Len())
	}

	for i, base := range groups {
		got := palette.Entries[i]
		if math.Abs(got.Proportion-float64(sizes[i])/1000) > epsilon {
			t.Errorf("entry %d proportion = %f, want %f", i, got.Proportion, float64(sizes[i])/1000)
		}
		if absDiff(got.Colour.R, base.R+2) > 1 || absDiff(got.Colour.G, base.G+2) > 1 || absDiff(got.Colour.B, base.B+2) > 1 {
			t.Errorf("entry %d colour = %+v, want near %+v", i, got.Colour, base)
		}
	}
}

func TestKMeansSeedOverride(t *testing.T) {
	pixels := noisy(2000)

	a, err := NewKMeansExtractor().WithSeed(42).Extract(pixels, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	b, err := NewKMeansExtractor().WithSeed(42).Extract(pixels, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different palettes")
	}
}

func TestMedianCutSplitsWidestChannel(t *testing.T) {
	// Green spans 0..255, red and blue are constant, so the first cut is on green.
	var pixels PixelBuffer
	for g := range 256 {
		pixels = append(pixels, 10, uint8(g), 10)
	}

	palette, err := NewMedianCutExtractor().Extract(pixels, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("Extract() returned %d colours, want 2", palette.Len())
	}
	low, high := palette.Entries[0].Colour, palette.Entries[1].Colour
	if low.G > high.G {
		low, high = high, low
	}
	if low.G >= 128 || high.G < 128 || low.R != 10 || high.B != 10 {
		t.Errorf("unexpected split: %+v / %+v", low, high)
	}
}

func TestMedianCutRepresentative(t *testing.T) {
	dark := RGB{R: 10, G: 10, B: 10}
	light := RGB{R: 12, G: 10, B: 10}

	tests := []struct {
		name   string
		pixels PixelBuffer
		want   RGB
	}{
		{name: "most populous wins", pixels: concat(solid(dark, 3), solid(light, 5)), want: light},
		{name: "tie goes to first seen", pixels: concat(solid(light, 4), solid(dark, 4)), want: light},
		{name: "tie goes to first seen reversed", pixels: concat(solid(dark, 4), solid(light, 4)), want: dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 5 {
				palette, err := NewMedianCutExtractor().Extract(tt.pixels, 1)
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				if palette.Len() != 1 || palette.Entries[0].Colour != tt.want {
					t.Fatalf("Extract() = %v, want single %v", palette.ToHex(), tt.want.Hex())
				}
				if math.Abs(palette.Entries[0].Proportion-1) > epsilon {
					t.Errorf("proportion = %f, want 1", palette.Entries[0].Proportion)
				}
			}
		})
	}
}

func TestContentSeed(t *testing.T) {
	a := noisy(100)
	b := append(PixelBuffer(nil), a...)
	if ContentSeed(a) != ContentSeed(b) {
		t.Error("ContentSeed() differs for identical content")
	}
	b[0]++
	if ContentSeed(a) == ContentSeed(b) {
		t.Error("ContentSeed() unchanged after content change")
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
