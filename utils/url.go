package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// EncodeURLWithSpaces properly encodes a URL that may contain unencoded spaces.
// Some media servers hand out artwork paths with raw spaces which need to be
// %20 encoded for HTTP.
func EncodeURLWithSpaces(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	// Build URL with properly encoded path and query
	encoded := parsedURL.Scheme + "://" + parsedURL.Host + parsedURL.EscapedPath()
	if parsedURL.RawQuery != "" {
		// Encode spaces in query string as %20
		encodedQuery := strings.ReplaceAll(parsedURL.RawQuery, " ", "%20")
		encoded += "?" + encodedQuery
	}
	return encoded, nil
}

// ValidateArtworkURL rejects artwork URLs with non-HTTP schemes so a
// misconfigured source can't point the downloader at local files or other
// protocols.
func ValidateArtworkURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	switch strings.ToLower(parsedURL.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("unsupported url scheme %q", parsedURL.Scheme)
	}
}
