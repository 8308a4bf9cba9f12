package recognition

import "image"

// A Strategy is one attempt shape in the detection ladder: a named
// transformation applied to the frame before handing it to the detector.
// Strategies run in order until one of them yields at least one embedding.
type Strategy struct {
	Name      string
	Transform func(image.Image) image.Image
}

const (
	enhanceAlpha = 1.3
	enhanceBeta  = 20
)

// DefaultStrategies returns the ladder used for every frame: an enhanced
// pass first (classroom frames tend to be dark), then the untouched
// original, optionally a 2x upscale, then the three remaining quarter
// rotations for sideways or upside-down frames.
func DefaultStrategies(upscale bool) []Strategy {
	strategies := []Strategy{
		{Name: "enhanced", Transform: func(img image.Image) image.Image {
			return enhance(img, enhanceAlpha, enhanceBeta)
		}},
		{Name: "original", Transform: func(img image.Image) image.Image {
			return img
		}},
	}
	if upscale {
		strategies = append(strategies, Strategy{Name: "upscaled", Transform: upscale2x})
	}
	return append(strategies,
		Strategy{Name: "rotated-90", Transform: rotate90},
		Strategy{Name: "rotated-180", Transform: rotate180},
		Strategy{Name: "rotated-270", Transform: rotate270},
	)
}
