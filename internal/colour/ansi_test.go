package colour

import (
	"math"
	"strings"
	"testing"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want float64
	}{
		{"black", RGB{0, 0, 0}, 0},
		{"white", RGB{255, 255, 255}, 1},
		{"red", RGB{255, 0, 0}, 0.2126},
		{"green", RGB{0, 255, 0}, 0.7152},
		{"blue", RGB{0, 0, 255}, 0.0722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.rgb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminance(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 1, G: 2, B: 3}, 3)
	want := "\033[48;2;1;2;3m   \033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}

	if got := ColourPreview(RGB{}, 0); !strings.Contains(got, strings.Repeat(" ", defaultWidth)) {
		t.Errorf("ColourPreview() with zero width should use default width, got %q", got)
	}
}

func TestColourPreviewWithText(t *testing.T) {
	t.Run("dark background gets white text", func(t *testing.T) {
		got := ColourPreviewWithText(RGB{0, 0, 128}, "50%", 7)
		if !strings.Contains(got, "\033[38;2;255;255;255m  50%  ") {
			t.Errorf("unexpected preview %q", got)
		}
	})

	t.Run("light background gets black text", func(t *testing.T) {
		got := ColourPreviewWithText(RGB{255, 255, 200}, "50%", 3)
		if !strings.Contains(got, "\033[38;2;0;0;0m50%") {
			t.Errorf("unexpected preview %q", got)
		}
	})

	t.Run("long text is truncated", func(t *testing.T) {
		got := ColourPreviewWithText(RGB{}, "abcdefgh", 4)
		if !strings.Contains(got, "abcd\033[0m") {
			t.Errorf("unexpected preview %q", got)
		}
	})
}
