package spectrum

import (
	goimage "image"
	"image/color"
	"testing"
)

// halfWhite returns a w×h gray image whose left half is white.
func halfWhite(w, h int) *goimage.Gray {
	img := goimage.NewGray(goimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w / 2 {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestNewNoise_Threshold(t *testing.T) {
	src := goimage.NewGray(goimage.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 128})
	src.SetGray(1, 0, color.Gray{Y: 129})

	mask := NewNoise(src).Mask(2, 1)
	if mask.At(0, 0) != 0 || mask.At(1, 0) != 1 {
		t.Errorf("threshold mask = [%v %v], want [0 1]", mask.At(0, 0), mask.At(1, 0))
	}
}

func TestNoise_Bounds(t *testing.T) {
	tests := []struct {
		name           string
		noiseW, noiseH int
		w, h           int
		want           goimage.Rectangle
	}{
		{"wide noise", 4, 2, 8, 8, goimage.Rect(0, 2, 8, 6)},
		{"tall noise", 2, 4, 8, 8, goimage.Rect(2, 0, 6, 8)},
		{"same aspect", 4, 4, 8, 8, goimage.Rect(0, 0, 8, 8)},
		{"empty display", 4, 4, 0, 8, goimage.Rectangle{}},
	}
	for _, tt := range tests {
		n := NewNoise(goimage.NewGray(goimage.Rect(0, 0, tt.noiseW, tt.noiseH)))
		if got := n.Bounds(tt.w, tt.h); got != tt.want {
			t.Errorf("%s: Bounds(%d, %d) = %v, want %v", tt.name, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestNoise_Mask(t *testing.T) {
	mask := NewNoise(halfWhite(4, 2)).Mask(8, 8)
	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if y >= 2 && y < 6 && x < 4 {
				want = 1
			}
			if got := mask.At(x, y); got != want {
				t.Errorf("Mask At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
