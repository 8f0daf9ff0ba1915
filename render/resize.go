package render

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage marks source artwork with a zero dimension. Callers skip
// the item instead of propagating a crash into the batch.
var ErrInvalidImage = errors.New("image has zero width or height")

// ResizeToHeight scales an image to the target height, preserving aspect
// ratio. Width becomes round(w * target / h).
func ResizeToHeight(img image.Image, targetHeight int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}
	width := (b.Dx()*targetHeight + b.Dy()/2) / b.Dy()
	return imaging.Resize(img, width, targetHeight, imaging.Lanczos), nil
}

// ResizeToWidth scales an image to the target width, preserving aspect ratio.
func ResizeToWidth(img image.Image, targetWidth int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}
	height := (b.Dy()*targetWidth + b.Dx()/2) / b.Dx()
	return imaging.Resize(img, targetWidth, height, imaging.Lanczos), nil
}

// FitWithin scales an image so it fits entirely inside maxWidth x maxHeight,
// preserving aspect ratio. It tries the width constraint first and re-derives
// from the height when the result would be too tall. The box is not
// necessarily filled; neither dimension is ever exceeded.
func FitWithin(img image.Image, maxWidth, maxHeight int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}
	aspect := float64(b.Dx()) / float64(b.Dy())

	width := maxWidth
	height := int(float64(width) / aspect)
	if height > maxHeight {
		height = maxHeight
		width = int(float64(height) * aspect)
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}
