package plex

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

// Client handles Plex Media Server API interactions for library browsing
// and artwork retrieval
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Section represents a library section (movie or show library)
type Section struct {
	Key   string `json:"key"`
	Type  string `json:"type"` // "movie" or "show"
	Title string `json:"title"`
}

// sectionsResponse represents the /library/sections response
type sectionsResponse struct {
	MediaContainer struct {
		Directory []Section `json:"Directory"`
	} `json:"MediaContainer"`
}

// LibraryItem represents one movie or show from a library section
type LibraryItem struct {
	RatingKey             string  `json:"ratingKey"`
	Type                  string  `json:"type"` // "movie" or "show"
	Title                 string  `json:"title"`
	Summary               string  `json:"summary"`
	Year                  int     `json:"year"`
	ContentRating         string  `json:"contentRating"`
	AudienceRating        float64 `json:"audienceRating"`
	Duration              int64   `json:"duration"` // milliseconds
	ChildCount            int     `json:"childCount"`
	AddedAt               int64   `json:"addedAt"`
	OriginallyAvailableAt string  `json:"originallyAvailableAt"`
	Art                   string  `json:"art"`
	Genres                []Genre `json:"Genre"`
}

// Genre is a tag attached to a library item
type Genre struct {
	Tag string `json:"tag"`
}

// GenreNames returns the item's genre tags in order
func (i LibraryItem) GenreNames() []string {
	names := make([]string, 0, len(i.Genres))
	for _, g := range i.Genres {
		names = append(names, g.Tag)
	}
	return names
}

// itemsResponse represents a section listing response
type itemsResponse struct {
	MediaContainer struct {
		Metadata []LibraryItem `json:"Metadata"`
	} `json:"MediaContainer"`
}

// NewClient creates a new Plex server client
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// setPlexHeaders adds the token and accept headers to a request
func (c *Client) setPlexHeaders(req *http.Request) {
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")
}

// getJSON performs a GET against the Plex server and decodes the response
func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setPlexHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("plex api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("plex request failed: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Sections retrieves the library sections matching sectionType ("movie" or
// "show")
func (c *Client) Sections(sectionType string) ([]Section, error) {
	var resp sectionsResponse
	if err := c.getJSON("/library/sections", &resp); err != nil {
		return nil, err
	}

	var sections []Section
	for _, s := range resp.MediaContainer.Directory {
		if s.Type == sectionType {
			sections = append(sections, s)
		}
	}
	return sections, nil
}

// SectionItems retrieves every item of a library section
func (c *Client) SectionItems(sectionKey string) ([]LibraryItem, error) {
	var resp itemsResponse
	if err := c.getJSON("/library/sections/"+sectionKey+"/all", &resp); err != nil {
		return nil, err
	}
	return resp.MediaContainer.Metadata, nil
}

// AllItems aggregates the items of every section of the given type
func (c *Client) AllItems(sectionType string) ([]LibraryItem, error) {
	sections, err := c.Sections(sectionType)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	var items []LibraryItem
	for _, section := range sections {
		sectionItems, err := c.SectionItems(section.Key)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", section.Title, err)
		}
		items = append(items, sectionItems...)
	}
	return items, nil
}

// ArtURL returns an authenticated URL for an item's background art, or ""
// when the item has none
func (c *Client) ArtURL(item LibraryItem) string {
	if item.Art == "" {
		return ""
	}
	return fmt.Sprintf("%s%s?X-Plex-Token=%s", c.baseURL, item.Art, c.token)
}

// ClearLogoURL returns an authenticated URL for an item's clearLogo image.
// Plex serves 404 when the item has no logo; callers treat that as a
// missing logo, not an error.
func (c *Client) ClearLogoURL(item LibraryItem) string {
	return fmt.Sprintf("%s/library/metadata/%s/clearLogo?X-Plex-Token=%s", c.baseURL, item.RatingKey, c.token)
}

// SortByAdded returns the items carrying an added timestamp, newest first
func SortByAdded(items []LibraryItem) []LibraryItem {
	var filtered []LibraryItem
	for _, item := range items {
		if item.AddedAt > 0 {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].AddedAt > filtered[b].AddedAt
	})
	return filtered
}

// SortByAired returns the items carrying an original air date, newest first
func SortByAired(items []LibraryItem) []LibraryItem {
	var filtered []LibraryItem
	for _, item := range items {
		if item.OriginallyAvailableAt != "" {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].OriginallyAvailableAt > filtered[b].OriginallyAvailableAt
	})
	return filtered
}
