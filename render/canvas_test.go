package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"promowall/models"
)

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// halfMaskedOverlay is opaque red in its left half and fully transparent in
// its right half, so a masked paste must touch exactly one side.
func halfMaskedOverlay(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			i := y*img.Stride + x*4
			img.Pix[i] = 200
			img.Pix[i+3] = 255
		}
	}
	return img
}

func writePNG(t *testing.T, fs afero.Fs, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0o644))
}

func TestBuildStaticOverlayPastesAndMasks(t *testing.T) {
	base := solidNRGBA(2000, 1125, color.NRGBA{R: 10, G: 10, B: 40, A: 255})
	backdrop := solidNRGBA(1000, 750, color.NRGBA{G: 200, A: 255})
	assets := &BrandAssets{
		Base:     base,
		Overlay:  halfMaskedOverlay(200, 200),
		Wordmark: testWordmark(),
	}

	canvas, err := buildStaticOverlay(backdrop, assets, Options{})
	require.NoError(t, err)

	// The template fixes the canvas size; the oversized backdrop is clipped.
	require.Equal(t, 2000, canvas.Bounds().Dx())
	require.Equal(t, 1125, canvas.Bounds().Dy())

	// Left of the paste offset the template shows through untouched.
	if got := canvas.NRGBAAt(100, 500); got != base.NRGBAAt(100, 500) {
		t.Errorf("template region = %v, want %v", got, base.NRGBAAt(100, 500))
	}

	// The backdrop covers the paste offset. Under the transparent half of the
	// overlay it must be exactly the backdrop color.
	clear := canvas.NRGBAAt(overlayBackdropOffsetX+150, 100)
	if clear.G != 200 || clear.R != 0 {
		t.Errorf("unmasked backdrop pixel = %v, want pure green", clear)
	}

	// Under the opaque half the overlay wins outright.
	masked := canvas.NRGBAAt(overlayBackdropOffsetX+50, 100)
	if masked.R != 200 || masked.G != 0 {
		t.Errorf("masked overlay pixel = %v, want pure red", masked)
	}
}

func TestLoadBrandAssetsPerStrategy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "assets/wordmark.png", testWordmark())
	writePNG(t, fs, "assets/bckg.png", solidNRGBA(2000, 1125, color.NRGBA{A: 255}))
	writePNG(t, fs, "assets/overlay.png", halfMaskedOverlay(200, 200))

	static, err := LoadBrandAssets(fs, "assets", StaticOverlay)
	require.NoError(t, err)
	require.NotNil(t, static.Wordmark)
	require.NotNil(t, static.Base)
	require.NotNil(t, static.Overlay)

	vignette, err := LoadBrandAssets(fs, "assets", GeneratedVignette)
	require.NoError(t, err)
	require.NotNil(t, vignette.Wordmark)
	require.Nil(t, vignette.Base)
	require.Nil(t, vignette.Overlay)
}

func TestLoadBrandAssetsMissingTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "assets/wordmark.png", testWordmark())

	if _, err := LoadBrandAssets(fs, "assets", StaticOverlay); err == nil {
		t.Fatal("expected error when the base template is missing")
	}
}

func TestRenderStaticOverlayEndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("out", 0o755))
	writePNG(t, fs, "assets/wordmark.png", testWordmark())
	writePNG(t, fs, "assets/bckg.png", solidNRGBA(2000, 1125, color.NRGBA{R: 10, G: 10, B: 40, A: 255}))
	writePNG(t, fs, "assets/overlay.png", halfMaskedOverlay(400, 1125))

	assets, err := LoadBrandAssets(fs, "assets", StaticOverlay)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Strategy = StaticOverlay
	r := NewRenderer(opts, testFontSet(), assets, NewOutputWriter(fs, 90, false))

	item := models.MediaItem{
		Title:       "Overlay Movie",
		Overview:    "A branded template gets a backdrop pasted in and a gradient masked over it.",
		Genres:      []string{"Drama"},
		Year:        "2024",
		Kind:        models.KindMovie,
		RuntimeMins: 101,
		Label:       "Now Available on",
		Backdrop:    testBackdropPNG(t),
	}

	path, err := r.Render(item, "out")
	require.NoError(t, err)
	require.Equal(t, "out/Overlay_Movie.jpg", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Output keeps the template's dimensions, not the backdrop's.
	require.Equal(t, 2000, decoded.Bounds().Dx())
	require.Equal(t, 1125, decoded.Bounds().Dy())

	// The dark template makes the white fallback title stand out.
	if !regionHasNearWhite(decoded, int(titleX), int(titleY), 300, 40) {
		t.Error("no rendered title pixels found in the title region")
	}
}
