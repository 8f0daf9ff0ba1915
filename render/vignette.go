package render

import (
	"image"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	vignetteCanvasWidth  = 3840
	vignetteCanvasHeight = 2160

	// Luminance standard deviation below which the blurred canvas is
	// considered visually flat (solid-color artwork). Logged only; the
	// rendering itself does not change.
	uniformStdDevThreshold = 15.0

	// The large-radius blur runs on a downscaled proxy and is scaled back up.
	// At radius 800 on a 4K frame no recognizable detail survives either way,
	// and the proxy keeps the pass tractable.
	blurProxyWidth  = 480
	blurProxyHeight = 270
)

// vignetteMask builds a directional alpha mask for the given position
// ("bottom-left", "top-right", "left", ...). Each named axis contributes a
// linear ramp clipped to [0,1] over fadeRatio of that axis, raised to
// fadePower. Corner positions take the minimum of the two ramps, edge
// positions the product. offsetLeft and offsetBottom shift the ramp start
// inward from the true edge.
func vignetteMask(w, h int, position string, fadeRatio, fadePower float64, offsetLeft, offsetBottom int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))

	rx := float64(w) * fadeRatio
	ry := float64(h) * fadeRatio

	horizontal := strings.Contains(position, "left") || strings.Contains(position, "right")
	vertical := strings.Contains(position, "top") || strings.Contains(position, "bottom")

	for y := 0; y < h; y++ {
		distY := 1.0
		if strings.Contains(position, "top") {
			distY = clampUnit(float64(y) / ry)
		} else if strings.Contains(position, "bottom") {
			distY = clampUnit(float64(h-y-offsetBottom) / ry)
		}
		for x := 0; x < w; x++ {
			distX := 1.0
			if strings.Contains(position, "left") {
				distX = clampUnit(float64(x-offsetLeft) / rx)
			} else if strings.Contains(position, "right") {
				distX = clampUnit(float64(w-x) / rx)
			}

			var alpha float64
			if horizontal && vertical {
				alpha = math.Min(distX, distY)
			} else {
				alpha = distX * distY
			}
			mask.Pix[y*mask.Stride+x] = uint8(math.Pow(alpha, fadePower) * 255)
		}
	}
	return mask
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// blurryCanvas stretches the backdrop over the full 4K frame, blurs away all
// recognizable detail and adds uniform dithering noise so the near-flat
// regions survive JPEG encoding without banding. The returned flag reports
// whether the result is visually uniform.
func blurryCanvas(backdrop image.Image, v VignetteOptions) (*image.NRGBA, bool) {
	// Stretch on purpose: this is a blur target, not a content-preserving
	// resize.
	proxy := imaging.Resize(backdrop, blurProxyWidth, blurProxyHeight, imaging.Lanczos)
	scale := float64(blurProxyWidth) / float64(vignetteCanvasWidth)
	proxy = imaging.Blur(proxy, v.BlurRadius*scale)
	bg := imaging.Resize(proxy, vignetteCanvasWidth, vignetteCanvasHeight, imaging.Lanczos)

	var sum, sumSq float64
	n := float64(vignetteCanvasWidth * vignetteCanvasHeight)
	for i := 0; i < len(bg.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			noise := (rand.Float64()*2 - 1) * v.DitherStrength
			bg.Pix[i+c] = clampByte(float64(bg.Pix[i+c]) + noise)
		}
		// Rec. 601 luma, matching a grayscale conversion of the dithered
		// canvas.
		lum := 0.299*float64(bg.Pix[i]) + 0.587*float64(bg.Pix[i+1]) + 0.114*float64(bg.Pix[i+2])
		sum += lum
		sumSq += lum * lum
	}
	mean := sum / n
	stdDev := math.Sqrt(sumSq/n - mean*mean)

	return bg, stdDev < uniformStdDevThreshold
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// buildVignetteCanvas produces the generated-vignette background: a darkened,
// blurred, dithered 4K canvas with a vignette-masked sharp copy of the
// backdrop pasted right-aligned into the top corner.
func buildVignetteCanvas(backdrop image.Image, o Options) (*image.NRGBA, error) {
	b := backdrop.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	v := o.Vignette
	bg, uniform := blurryCanvas(backdrop, v)
	if uniform {
		log.Printf("[Background] blurred canvas is nearly uniform (flat artwork)")
	}

	for i := 0; i < len(bg.Pix); i += 4 {
		bg.Pix[i] = uint8(float64(bg.Pix[i]) * v.DarkenFactor)
		bg.Pix[i+1] = uint8(float64(bg.Pix[i+1]) * v.DarkenFactor)
		bg.Pix[i+2] = uint8(float64(bg.Pix[i+2]) * v.DarkenFactor)
	}

	sharp, err := ResizeToWidth(backdrop, v.TargetWidth)
	if err != nil {
		return nil, err
	}
	rgba := imaging.Clone(sharp)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	mask := vignetteMask(w, h, "bottom-left", v.FadeRatio, v.FadePower, v.OffsetLeft, v.OffsetBottom)
	// Soften the mask itself so the alpha transition has no visible hard edge.
	blurredMask := imaging.Blur(mask, v.MaskBlurRadius)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgba.Pix[y*rgba.Stride+x*4+3] = blurredMask.Pix[y*blurredMask.Stride+x*4]
		}
	}

	return imaging.Overlay(bg, rgba, image.Pt(vignetteCanvasWidth-w, 0), 1.0), nil
}
