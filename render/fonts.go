package render

import (
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Brand font sizes, shared by every script variant.
const (
	titleFontSize   = 190
	infoFontSize    = 55
	summaryFontSize = 50
	labelFontSize   = 60
)

// FontSet holds the faces for each text role. Faces are loaded once and
// reused read-only across renders.
type FontSet struct {
	Title   font.Face
	Info    font.Face
	Summary font.Face
	Label   font.Face
}

// LoadFontSet parses the TTF at path and derives the four brand faces from
// it. A failure here is fatal for the whole batch: without a renderable font
// every output image would be broken.
func LoadFontSet(fs afero.Fs, path string) (*FontSet, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	set := &FontSet{}
	for _, f := range []struct {
		face *font.Face
		size float64
	}{
		{&set.Title, titleFontSize},
		{&set.Info, infoFontSize},
		{&set.Summary, summaryFontSize},
		{&set.Label, labelFontSize},
	} {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("create %gpt face: %w", f.size, err)
		}
		*f.face = face
	}
	return set, nil
}
