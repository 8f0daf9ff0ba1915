package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

// Static-overlay geometry, tuned per brand against the template assets.
const (
	overlayBackdropHeight  = 1500
	overlayBackdropOffsetX = 1175
)

// BrandAssets holds the pre-loaded brand artwork. The images are read once at
// startup and treated as read-only; every render copies before drawing so no
// content accumulates across calls.
type BrandAssets struct {
	// Base and Overlay are the static-overlay template: a fixed-size branded
	// canvas and a translucent gradient that darkens the text region. Both
	// are nil when the generated-vignette strategy is active.
	Base    image.Image
	Overlay image.Image

	// Wordmark is the provider logo drawn next to the label line. Required by
	// both strategies.
	Wordmark image.Image
}

// LoadBrandAssets reads the brand artwork for the given strategy from dir:
// wordmark.png always, bckg.png and overlay.png only for the static-overlay
// strategy.
func LoadBrandAssets(fs afero.Fs, dir string, strategy Strategy) (*BrandAssets, error) {
	wordmark, err := loadImage(fs, dir+"/wordmark.png")
	if err != nil {
		return nil, fmt.Errorf("load wordmark: %w", err)
	}
	assets := &BrandAssets{Wordmark: wordmark}

	if strategy == StaticOverlay {
		if assets.Base, err = loadImage(fs, dir+"/bckg.png"); err != nil {
			return nil, fmt.Errorf("load base template: %w", err)
		}
		if assets.Overlay, err = loadImage(fs, dir+"/overlay.png"); err != nil {
			return nil, fmt.Errorf("load gradient overlay: %w", err)
		}
	}
	return assets, nil
}

func loadImage(fs afero.Fs, path string) (image.Image, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// buildStaticOverlay pastes the resized backdrop onto a copy of the branded
// template, then masked-pastes the gradient overlay at the same offset. Only
// pixels where the overlay has non-zero alpha are affected; this is not a
// blend of the whole region.
func buildStaticOverlay(backdrop image.Image, assets *BrandAssets, o Options) (*image.NRGBA, error) {
	resized, err := ResizeToHeight(backdrop, overlayBackdropHeight)
	if err != nil {
		return nil, err
	}

	canvas := imaging.Clone(assets.Base)
	canvas = imaging.Paste(canvas, resized, image.Pt(overlayBackdropOffsetX, 0))
	canvas = imaging.Overlay(canvas, assets.Overlay, image.Pt(overlayBackdropOffsetX, 0), 1.0)
	return canvas, nil
}

// buildCanvas dispatches to the configured background strategy.
func buildCanvas(backdrop image.Image, assets *BrandAssets, o Options) (*image.NRGBA, error) {
	switch o.Strategy {
	case StaticOverlay:
		return buildStaticOverlay(backdrop, assets, o)
	case GeneratedVignette:
		return buildVignetteCanvas(backdrop, o)
	default:
		return nil, fmt.Errorf("unknown background strategy %q", o.Strategy)
	}
}
