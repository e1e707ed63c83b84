package colour

import (
	"encoding/json"
	"image/color"
	"math"
	"strings"
	"testing"
)

func testPalette() *Palette {
	return NewPalette([]Entry{
		{Colour: RGB{R: 255, G: 0, B: 0}, Proportion: 0.5},
		{Colour: RGB{R: 0, G: 255, B: 0}, Proportion: 0.3},
		{Colour: RGB{R: 0, G: 0, B: 255}, Proportion: 0.15},
	})
}

func TestNewPalette(t *testing.T) {
	palette := testPalette()

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestPaletteLen(t *testing.T) {
	tests := []struct {
		name    string
		palette *Palette
		want    int
	}{
		{
			name:    "nil palette",
			palette: nil,
			want:    0,
		},
		{
			name:    "empty palette",
			palette: NewPalette(nil),
			want:    0,
		},
		{
			name:    "multiple colors",
			palette: testPalette(),
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.palette.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPaletteCoverage(t *testing.T) {
	if got := testPalette().Coverage(); math.Abs(got-0.95) > 1e-9 {
		t.Errorf("Coverage() = %f, want 0.95", got)
	}
	if got := NewPalette(nil).Coverage(); got != 0 {
		t.Errorf("Coverage() of empty palette = %f, want 0", got)
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{
			name: "red",
			rgb:  RGB{R: 255, G: 0, B: 0},
			want: "#ff0000",
		},
		{
			name: "mixed",
			rgb:  RGB{R: 26, G: 43, B: 60},
			want: "#1a2b3c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#ff0000", want: RGB{R: 255}},
		{in: "1a2b3c", want: RGB{R: 26, G: 43, B: 60}},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteToHex(t *testing.T) {
	got := testPalette().ToHex()
	want := []string{"#ff0000", "#00ff00", "#0000ff"}

	if len(got) != len(want) {
		t.Fatalf("ToHex() returned %d colors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPaletteToJSON(t *testing.T) {
	data, err := testPalette().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if decoded.Count != 3 {
		t.Errorf("Count = %d, want 3", decoded.Count)
	}
	if decoded.Colors[0].Hex != "#ff0000" || decoded.Colors[0].Proportion != 0.5 {
		t.Errorf("Colors[0] = %+v, want #ff0000 at 0.5", decoded.Colors[0])
	}
	if math.Abs(decoded.Coverage-0.95) > 1e-9 {
		t.Errorf("Coverage = %f, want 0.95", decoded.Coverage)
	}
}

func TestPaletteGet(t *testing.T) {
	palette := testPalette()

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{name: "first", index: 0},
		{name: "last", index: 2},
		{name: "negative", index: -1, wantErr: true},
		{name: "out of bounds", index: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := palette.Get(tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Get(%d) error = %v, wantErr %v", tt.index, err, tt.wantErr)
			}
			if !tt.wantErr && entry != palette.Entries[tt.index] {
				t.Errorf("Get(%d) = %+v, want %+v", tt.index, entry, palette.Entries[tt.index])
			}
		})
	}
}

func TestPaletteAll(t *testing.T) {
	palette := testPalette()

	count := 0
	for i, e := range palette.All() {
		if e != palette.Entries[i] {
			t.Errorf("All() yielded %+v at %d, want %+v", e, i, palette.Entries[i])
		}
		count++
		if i == 1 {
			break
		}
	}
	if count != 2 {
		t.Errorf("All() should stop when yield returns false, iterated %d", count)
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}

	got := testPalette().String()
	for _, want := range []string{"3 colors", "#ff0000", "rgb(0, 255, 0)", "15.00%"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}

	preview := testPalette().StringWithPreview(true)
	if !strings.Contains(preview, ansiBgPrefix) {
		t.Errorf("StringWithPreview(true) should contain ANSI escape codes")
	}
}
