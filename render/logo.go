package render

import (
	"bytes"
	"image"
)

// LogoResult is the outcome of resolving a clear logo for one item, decided
// exactly once per render. Found carries a decoded image; NotFound means the
// renderer falls back to drawing the title text. A decode failure is NotFound
// by definition, never an error that could abort the item.
type LogoResult struct {
	Image image.Image
	Found bool
}

// ResolveLogo decodes the fetched clear-logo bytes. Empty input, undecodable
// bytes and zero-dimension images all resolve to NotFound.
func ResolveLogo(data []byte) LogoResult {
	if len(data) == 0 {
		return LogoResult{}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return LogoResult{}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return LogoResult{}
	}
	return LogoResult{Image: img, Found: true}
}
