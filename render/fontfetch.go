package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
)

// fontSource is a downloadable TTF candidate.
type fontSource struct {
	URL  string
	Name string
}

// Fallback chain: the preferred brand font first, then visually similar light
// faces. EnsureFont walks the list until one is present or downloads cleanly.
var fallbackFonts = []fontSource{
	{"https://github.com/googlefonts/roboto/raw/main/src/hinted/Roboto-Light.ttf", "Roboto-Light.ttf"},
	{"https://github.com/googlefonts/opensans/raw/main/fonts/ttf/OpenSans-Light.ttf", "OpenSans-Light.ttf"},
	{"https://github.com/googlefonts/lato/raw/main/fonts/ttf/Lato-Light.ttf", "Lato-Light.ttf"},
	{"https://github.com/googlefonts/poppins/raw/main/fonts/ttf/Poppins-Light.ttf", "Poppins-Light.ttf"},
}

// EnsureFont makes sure a usable TTF exists in dir and returns its path.
// A user-configured source (may be zero-valued) is tried before the fallback
// chain. Existing files are reused without re-downloading.
func EnsureFont(fs afero.Fs, httpc *http.Client, dir string, preferred fontSource) (string, error) {
	candidates := fallbackFonts
	if preferred.URL != "" && preferred.Name != "" {
		candidates = append([]fontSource{preferred}, fallbackFonts...)
	}

	for _, c := range candidates {
		path := filepath.Join(dir, c.Name)
		if ok, _ := afero.Exists(fs, path); ok {
			return path, nil
		}
		if err := downloadFont(fs, httpc, c.URL, path); err != nil {
			log.Printf("[Fonts] download %s failed: %v", c.Name, err)
			continue
		}
		log.Printf("[Fonts] %s downloaded and saved", c.Name)
		return path, nil
	}
	return "", errors.New("no usable font available")
}

// PreferredFont builds the user-configured font source for EnsureFont.
func PreferredFont(url, name string) fontSource {
	return fontSource{URL: url, Name: name}
}

func downloadFont(fs afero.Fs, httpc *http.Client, url, path string) error {
	resp, err := httpc.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}
