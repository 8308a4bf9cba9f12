package recognition

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// enhance brightens and raises the contrast of an image: each channel
// becomes clamp(alpha*v + beta). Frames from classroom cameras are often
// underexposed, so this pass runs before the untouched original.
func enhance(src image.Image, alpha, beta float64) image.Image {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.RGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			dst.SetRGBA(x, y, color.RGBA{
				R: clampChannel(alpha*float64(c.R) + beta),
				G: clampChannel(alpha*float64(c.G) + beta),
				B: clampChannel(alpha*float64(c.B) + beta),
				A: c.A,
			})
		}
	}
	return dst
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// rotate90 turns the image 90 degrees clockwise.
func rotate90(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Set(height-1-y, x, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

func rotate180(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Set(width-1-x, height-1-y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

// rotate270 turns the image 90 degrees counterclockwise.
func rotate270(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Set(y, width-1-x, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

// upscale2x doubles both dimensions, which helps the HOG detector with
// small or distant faces.
func upscale2x(src image.Image) image.Image {
	bounds := src.Bounds()
	return resize.Resize(uint(bounds.Dx()*2), uint(bounds.Dy()*2), src, resize.Lanczos3)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
