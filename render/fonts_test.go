package render

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestLoadFontSetMissingFile(t *testing.T) {
	if _, err := LoadFontSet(afero.NewMemMapFs(), "nope.ttf"); err == nil {
		t.Fatal("expected error for missing font file")
	}
}

func TestLoadFontSetRejectsGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "bad.ttf", []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFontSet(fs, "bad.ttf"); err == nil {
		t.Fatal("expected parse error for garbage font data")
	}
}

func TestEnsureFontReusesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "fonts/Roboto-Light.ttf", []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected network request to %s", req.URL)
		return nil, nil
	})}

	path, err := EnsureFont(fs, httpc, "fonts", PreferredFont("", ""))
	if err != nil {
		t.Fatalf("EnsureFont error: %v", err)
	}
	if path != "fonts/Roboto-Light.ttf" {
		t.Errorf("path = %q, want cached Roboto", path)
	}
}

func TestEnsureFontWalksFallbackChain(t *testing.T) {
	fs := afero.NewMemMapFs()

	// First candidate 404s, second succeeds.
	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		status := http.StatusNotFound
		if strings.Contains(req.URL.Path, "OpenSans") {
			status = http.StatusOK
		}
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Body:       io.NopCloser(strings.NewReader("ttf-bytes")),
			Header:     make(http.Header),
		}, nil
	})}

	path, err := EnsureFont(fs, httpc, "fonts", PreferredFont("", ""))
	if err != nil {
		t.Fatalf("EnsureFont error: %v", err)
	}
	if path != "fonts/OpenSans-Light.ttf" {
		t.Errorf("path = %q, want the OpenSans fallback", path)
	}
	if ok, _ := afero.Exists(fs, "fonts/OpenSans-Light.ttf"); !ok {
		t.Error("downloaded font was not saved")
	}
}

func TestEnsureFontAllCandidatesFail(t *testing.T) {
	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Status:     "503 Service Unavailable",
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})}

	if _, err := EnsureFont(afero.NewMemMapFs(), httpc, "fonts", PreferredFont("", "")); err == nil {
		t.Fatal("expected error when every font source fails")
	}
}
