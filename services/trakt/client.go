package trakt

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	traktAPIBaseURL = "https://api.trakt.tv"
	traktAPIVersion = "2"
)

// Client handles Trakt API interactions for public list fetching
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
}

// IDs holds external identifiers for a media item
type IDs struct {
	Trakt int    `json:"trakt,omitempty"`
	Slug  string `json:"slug,omitempty"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
	TVDB  int    `json:"tvdb,omitempty"`
}

// Movie represents a Trakt movie
type Movie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// Show represents a Trakt TV show
type Show struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// ListItem represents an item from a user's custom list
type ListItem struct {
	Rank     int       `json:"rank"`
	ListedAt time.Time `json:"listed_at"`
	Type     string    `json:"type"` // "movie" or "show"
	Movie    *Movie    `json:"movie,omitempty"`
	Show     *Show     `json:"show,omitempty"`
}

// TMDBID returns the TMDB identifier of the underlying movie or show,
// or 0 when neither is set
func (i ListItem) TMDBID() int {
	switch {
	case i.Movie != nil:
		return i.Movie.IDs.TMDB
	case i.Show != nil:
		return i.Show.IDs.TMDB
	default:
		return 0
	}
}

// NewClient creates a new Trakt API client
func NewClient(clientID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    traktAPIBaseURL,
		clientID:   clientID,
	}
}

// setTraktHeaders adds required Trakt API headers to a request
func (c *Client) setTraktHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", traktAPIVersion)
	req.Header.Set("trakt-api-key", c.clientID)
}

// ListItems retrieves the items of a user's custom list
func (c *Client) ListItems(username, listName string) ([]ListItem, error) {
	url := fmt.Sprintf("%s/users/%s/lists/%s/items", c.baseURL, username, listName)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setTraktHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trakt api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trakt list fetch failed: %s - %s", resp.Status, string(body))
	}

	var items []ListItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return items, nil
}
