package render

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var opaqueBlack = color.NRGBA{A: 255}

// CleanFilename maps a title to a filesystem-safe name: alphanumerics and
// '.', '_', '-' survive, every other rune becomes a single underscore. Runs
// of underscores are kept as-is, one per replaced rune, so the mapping stays
// a pure per-rune substitution. Two titles that clean to the same name
// overwrite each other's file; that is accepted last-write-wins behavior,
// not detected or reported.
func CleanFilename(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '.', r == '_', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// OutputWriter encodes finished canvases to JPEG and writes them without ever
// exposing a truncated file: the encode goes to a temp name in the target
// directory and is renamed into place.
type OutputWriter struct {
	FS         afero.Fs
	Quality    int
	DateSuffix bool

	// now is swappable for deterministic date suffixes in tests.
	now func() time.Time
}

// NewOutputWriter builds a writer over the given filesystem.
func NewOutputWriter(fs afero.Fs, quality int, dateSuffix bool) *OutputWriter {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &OutputWriter{FS: fs, Quality: quality, DateSuffix: dateSuffix, now: time.Now}
}

// Filename derives the deterministic output filename for a title.
func (w *OutputWriter) Filename(title string) string {
	name := CleanFilename(title)
	if w.DateSuffix {
		name += "_" + w.now().Format("20060102")
	}
	return name + ".jpg"
}

// Save flattens the canvas to opaque RGB, encodes it as JPEG and writes it
// atomically into dir. The directory must already exist. Returns the final
// path.
func (w *OutputWriter) Save(canvas image.Image, dir, title string) (string, error) {
	// Composite any remaining alpha against black; JPEG has no transparency.
	flat := imaging.New(canvas.Bounds().Dx(), canvas.Bounds().Dy(), opaqueBlack)
	flat = imaging.Overlay(flat, canvas, image.Pt(0, 0), 1.0)

	final := filepath.Join(dir, w.Filename(title))
	tmp := final + "." + uuid.NewString() + ".tmp"

	f, err := w.FS.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := jpeg.Encode(f, flat, &jpeg.Options{Quality: w.Quality}); err != nil {
		f.Close()
		w.FS.Remove(tmp)
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	if err := f.Close(); err != nil {
		w.FS.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := w.FS.Rename(tmp, final); err != nil {
		w.FS.Remove(tmp)
		return "", fmt.Errorf("rename into place: %w", err)
	}
	return final, nil
}
