package render

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const ellipsis = "..."

// DrawWithShadow renders text twice: first at the shadow offset in the shadow
// color, then at the position itself in the fill color. Every visible text
// element in the pipeline goes through this primitive. The position is the
// top-left corner of the text, not the baseline.
func DrawWithShadow(dc *gg.Context, x, y float64, text string, face font.Face, fill, shadow color.Color, offset float64) {
	dc.SetFontFace(face)
	baseline := y + float64(face.Metrics().Ascent.Ceil())

	dc.SetColor(shadow)
	dc.DrawString(text, x+offset, baseline+offset)
	dc.SetColor(fill)
	dc.DrawString(text, x, baseline)
}

// DrawBlockWithShadow renders a wrapped block line by line, stepping by the
// face's metric line height.
func DrawBlockWithShadow(dc *gg.Context, x, y float64, lines []string, face font.Face, fill, shadow color.Color, offset float64) {
	step := float64(LineHeight(face))
	for i, line := range lines {
		DrawWithShadow(dc, x, y+float64(i)*step, line, face, fill, shadow, offset)
	}
}

// LineHeight is the metric height of one rendered line: ascent plus descent
// from the face's own metrics. It is not a guess from the point size; fonts
// differ and precision layouts need the real glyph metrics.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil()
}

// BlockHeight is the metric height of a wrapped block of n lines.
func BlockHeight(face font.Face, n int) int {
	return LineHeight(face) * n
}

// WrapByPixelWidth greedily wraps text so every line's rendered pixel width
// stays within maxWidth, measured with the font face currently set on dc.
// Character-count wrapping is not enough here: proportional fonts make equal
// character counts wildly different widths. A single word wider than maxWidth
// on its own is split character by character.
func WrapByPixelWidth(dc *gg.Context, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""

	for _, word := range words {
		candidate := strings.TrimSpace(current + " " + word)
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}
		if w, _ := dc.MeasureString(word); w > maxWidth {
			split := ""
			for _, r := range word {
				if w, _ := dc.MeasureString(split + string(r)); w <= maxWidth {
					split += string(r)
					continue
				}
				// split is still empty when even one rune exceeds maxWidth;
				// emit the rune on its own rather than an empty line.
				if split != "" {
					lines = append(lines, split)
				}
				split = string(r)
			}
			current = split
		} else {
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// WrapWithLineLimit wraps like WrapByPixelWidth but stops at maxLines. When
// text is dropped, the final retained line gets the ellipsis placeholder,
// trimmed character by character from the end until line+ellipsis fits within
// maxWidth. maxLines <= 0 means no limit.
func WrapWithLineLimit(dc *gg.Context, text string, maxWidth float64, maxLines int) []string {
	lines := WrapByPixelWidth(dc, text, maxWidth)
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}

	lines = lines[:maxLines]
	last := lines[maxLines-1]
	for {
		candidate := strings.TrimRight(last, " ") + ellipsis
		if w, _ := dc.MeasureString(candidate); w <= maxWidth || last == "" {
			lines[maxLines-1] = candidate
			return lines
		}
		runes := []rune(last)
		last = string(runes[:len(runes)-1])
	}
}

// TruncateWords shortens text to at most maxChars characters without breaking
// words, appending the ellipsis placeholder when anything was dropped. The
// budget counts runes, not bytes, so multibyte titles keep their full
// allowance. The returned flag reports whether truncation happened so callers
// can adjust secondary formatting.
func TruncateWords(text string, maxChars int) (string, bool) {
	normalized := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(normalized) <= maxChars {
		return normalized, false
	}

	words := strings.Fields(normalized)
	out := ""
	for _, word := range words {
		candidate := out
		if candidate != "" {
			candidate += " "
		}
		candidate += word
		if utf8.RuneCountInString(candidate)+len(ellipsis) > maxChars {
			break
		}
		out = candidate
	}
	if out == "" {
		// Not even one word fits alongside the placeholder.
		return ellipsis, true
	}
	return out + ellipsis, true
}
