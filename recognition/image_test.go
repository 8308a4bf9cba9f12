package recognition

import (
	"image"
	"image/color"
	"testing"
)

func sourceImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetRGBA(3, 1, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	return img
}

func TestEnhance(t *testing.T) {
	out := enhance(sourceImage(), 1.3, 20)
	c := color.RGBAModel.Convert(out.At(0, 0)).(color.RGBA)
	if c.R != 150 { // 1.3*100+20
		t.Errorf("enhanced channel = %d, want 150", c.R)
	}
	c = color.RGBAModel.Convert(out.At(3, 1)).(color.RGBA)
	if c.R != 255 {
		t.Errorf("enhanced channel = %d, want clamped to 255", c.R)
	}
}

func TestRotations(t *testing.T) {
	src := sourceImage()
	marker := color.RGBAModel.Convert(src.At(0, 0)).(color.RGBA)

	tests := []struct {
		name       string
		rotate     func(image.Image) image.Image
		wantBounds image.Rectangle
		markerAt   image.Point
	}{
		{"90", rotate90, image.Rect(0, 0, 2, 4), image.Pt(1, 0)},
		{"180", rotate180, image.Rect(0, 0, 4, 2), image.Pt(3, 1)},
		{"270", rotate270, image.Rect(0, 0, 2, 4), image.Pt(0, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.rotate(src)
			if out.Bounds() != tt.wantBounds {
				t.Fatalf("bounds = %v, want %v", out.Bounds(), tt.wantBounds)
			}
			got := color.RGBAModel.Convert(out.At(tt.markerAt.X, tt.markerAt.Y)).(color.RGBA)
			if got != marker {
				t.Errorf("marker pixel at %v = %v, want %v", tt.markerAt, got, marker)
			}
		})
	}
}

func TestUpscale2x(t *testing.T) {
	out := upscale2x(sourceImage())
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", out.Bounds())
	}
}

func TestDefaultStrategiesOrder(t *testing.T) {
	names := func(strategies []Strategy) []string {
		out := []string{}
		for _, s := range strategies {
			out = append(out, s.Name)
		}
		return out
	}

	withUpscale := names(DefaultStrategies(true))
	want := []string{"enhanced", "original", "upscaled", "rotated-90", "rotated-180", "rotated-270"}
	for i := range want {
		if withUpscale[i] != want[i] {
			t.Fatalf("strategies = %v, want %v", withUpscale, want)
		}
	}

	withoutUpscale := names(DefaultStrategies(false))
	if len(withoutUpscale) != 5 {
		t.Errorf("strategies without upscale = %v, want 5 entries", withoutUpscale)
	}
}
