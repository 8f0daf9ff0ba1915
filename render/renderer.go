package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"promowall/models"
)

// Fixed layout anchors, historically tuned against the brand templates. The
// label block is the one element without a fixed position: it stacks below
// the measured summary block.
const (
	titleX, titleY     = 200.0, 420.0
	infoX, infoY       = 210.0, 650.0
	summaryX, summaryY = 210.0, 730.0

	labelGap = 30.0 // gap between summary block bottom and label top
	logoGap  = 25.0 // gap between clear logo bottom and info line top

	titleMaxChars = 30

	wordmarkPadding = 20 // horizontal gap between label text and wordmark
	wordmarkNudgeY  = 7  // vertical tweak aligning the wordmark to the label
)

// Renderer composites one finished background image per media item. It holds
// only read-only shared state (options, fonts, brand assets) and is safe to
// reuse across a whole batch; each render call is self-contained.
type Renderer struct {
	opts   Options
	fonts  *FontSet
	assets *BrandAssets
	writer *OutputWriter
}

// NewRenderer wires a renderer from validated options, loaded fonts and
// brand assets.
func NewRenderer(opts Options, fonts *FontSet, assets *BrandAssets, writer *OutputWriter) *Renderer {
	return &Renderer{opts: opts, fonts: fonts, assets: assets, writer: writer}
}

// Render decodes the item's backdrop, builds the background canvas, lays out
// the text blocks and identifying element, and writes the finished JPEG into
// outDir. It returns the final file path.
func (r *Renderer) Render(item models.MediaItem, outDir string) (string, error) {
	backdrop, _, err := image.Decode(bytes.NewReader(item.Backdrop))
	if err != nil {
		return "", fmt.Errorf("decode backdrop: %w", err)
	}

	canvas, err := buildCanvas(backdrop, r.assets, r.opts)
	if err != nil {
		return "", fmt.Errorf("build canvas: %w", err)
	}

	dc := gg.NewContextForImage(canvas)
	colors := r.opts.Colors
	shadow := float64(r.opts.ShadowOffset)

	DrawWithShadow(dc, infoX, infoY, InfoLine(item, r.opts.RatingPrefix), r.fonts.Info, colors.Info, colors.Shadow, shadow)

	summaryText, _ := TruncateWords(item.Overview, r.opts.MaxSummaryChars)
	dc.SetFontFace(r.fonts.Summary)
	summaryLines := WrapWithLineLimit(dc, summaryText, float64(r.opts.MaxSummaryWidth), r.opts.MaxSummaryLines)
	DrawBlockWithShadow(dc, summaryX, summaryY, summaryLines, r.fonts.Summary, colors.Summary, colors.Shadow, shadow)

	// The label sits below however many summary lines actually wrapped, so
	// short and long summaries never collide with it.
	labelY := summaryY + float64(BlockHeight(r.fonts.Summary, len(summaryLines))) + labelGap
	DrawWithShadow(dc, summaryX, labelY, item.Label, r.fonts.Label, colors.Metadata, colors.Shadow, shadow)

	logo := ResolveLogo(item.Logo)
	var fittedLogo image.Image
	if logo.Found {
		fittedLogo, err = FitWithin(logo.Image, r.opts.LogoBoxWidth, r.opts.LogoBoxHeight)
		if err != nil {
			fittedLogo = nil
		}
	}
	if fittedLogo == nil {
		title, _ := TruncateWords(item.Title, titleMaxChars)
		DrawWithShadow(dc, titleX, titleY, title, r.fonts.Title, colors.Main, colors.Shadow, shadow)
	}

	out := imaging.Clone(dc.Image())

	dc.SetFontFace(r.fonts.Label)
	labelWidth, _ := dc.MeasureString(item.Label)
	wordmarkBounds := r.assets.Wordmark.Bounds()
	wmX := int(summaryX+labelWidth) + wordmarkPadding
	wmY := int(labelY) + (LineHeight(r.fonts.Label)-wordmarkBounds.Dy())/2 + wordmarkNudgeY
	out = imaging.Overlay(out, r.assets.Wordmark, image.Pt(wmX, wmY), 1.0)

	if fittedLogo != nil {
		pos := image.Pt(int(summaryX), int(infoY-logoGap)-fittedLogo.Bounds().Dy())
		out = imaging.Overlay(out, fittedLogo, pos, 1.0)
	}

	return r.writer.Save(out, outDir, item.Title)
}
