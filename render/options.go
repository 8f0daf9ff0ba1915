package render

import "image/color"

// Strategy selects how the background canvas is built.
type Strategy string

const (
	// StaticOverlay pastes the backdrop onto a fixed branded template with a
	// translucent gradient overlay.
	StaticOverlay Strategy = "static_overlay"
	// GeneratedVignette synthesizes a 4K blurred canvas from the backdrop and
	// fades a sharp copy into it with a vignette mask.
	GeneratedVignette Strategy = "generated_vignette"
)

// Colors holds the text palette for one brand.
type Colors struct {
	Main     color.Color // title fallback text
	Info     color.Color // bullet-separated info line
	Summary  color.Color
	Metadata color.Color // label line
	Shadow   color.Color
}

// VignetteOptions tunes the generated-vignette strategy.
type VignetteOptions struct {
	FadeRatio      float64 // fraction of each axis the fade spans
	FadePower      float64 // exponent controlling fade steepness
	BlurRadius     float64 // gaussian radius for the 4K background, in pixels at full scale
	MaskBlurRadius float64 // gaussian radius applied to the vignette mask
	DitherStrength float64 // uniform noise amplitude per channel, in levels
	DarkenFactor   float64 // channel multiplier for the blurred canvas
	OffsetLeft     int     // shifts the left fade start inward, in pixels
	OffsetBottom   int     // shifts the bottom fade start inward, in pixels
	TargetWidth    int     // width of the sharp backdrop pasted over the canvas
}

// Options is the immutable rendering configuration. It is validated once at
// startup and passed into the renderer; nothing re-validates per item.
type Options struct {
	Strategy Strategy
	Colors   Colors

	ShadowOffset int

	MaxSummaryChars int
	MaxSummaryWidth int
	MaxSummaryLines int // 0 means unlimited lines

	LogoBoxWidth  int
	LogoBoxHeight int

	// RatingPrefix is the brand-specific prefix for the rating slot,
	// e.g. "TMDB: " or "IMDb: ".
	RatingPrefix string

	// DateSuffix appends _YYYYMMDD to output filenames.
	DateSuffix bool

	JPEGQuality int

	Vignette VignetteOptions
}

// DefaultOptions returns the tuned defaults observed across the brand
// variants: 4K vignette canvas, white text with gray info line, 2px shadow.
func DefaultOptions() Options {
	return Options{
		Strategy: GeneratedVignette,
		Colors: Colors{
			Main:     color.White,
			Info:     color.RGBA{R: 150, G: 150, B: 150, A: 255},
			Summary:  color.White,
			Metadata: color.White,
			Shadow:   color.Black,
		},
		ShadowOffset:    2,
		MaxSummaryChars: 525,
		MaxSummaryWidth: 2100,
		MaxSummaryLines: 3,
		LogoBoxWidth:    1300,
		LogoBoxHeight:   400,
		RatingPrefix:    "TMDB: ",
		JPEGQuality:     90,
		Vignette: VignetteOptions{
			FadeRatio:      0.3,
			FadePower:      2.5,
			BlurRadius:     800,
			MaskBlurRadius: 60,
			DitherStrength: 16,
			DarkenFactor:   0.4,
			OffsetBottom:   150,
			TargetWidth:    3000,
		},
	}
}
