package jellyfin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ticksPerMinute converts Jellyfin runtime ticks (100ns units) to minutes.
const ticksPerMinute = 10_000_000 * 60

// Client handles Jellyfin server API interactions for latest-media listings
// and artwork retrieval
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userID     string
}

// Item represents one movie or series from a user's library
type Item struct {
	ID              string   `json:"Id"`
	Name            string   `json:"Name"`
	Type            string   `json:"Type"` // "Movie" or "Series"
	Overview        string   `json:"Overview"`
	Genres          []string `json:"Genres"`
	Tags            []string `json:"Tags"`
	CommunityRating float64  `json:"CommunityRating"`
	OfficialRating  string   `json:"OfficialRating"`
	PremiereDate    string   `json:"PremiereDate"`
	ProductionYear  int      `json:"ProductionYear"`
	RunTimeTicks    int64    `json:"RunTimeTicks"`
	Path            string   `json:"Path"`
}

// RuntimeMinutes converts the item's runtime ticks to whole minutes
func (i Item) RuntimeMinutes() int {
	return int(i.RunTimeTicks / ticksPerMinute)
}

// itemsResponse represents the /Users/{id}/Items response
type itemsResponse struct {
	Items []Item `json:"Items"`
}

// season represents one entry of a /Shows/{id}/Seasons response
type season struct {
	Type        string `json:"Type"`
	IndexNumber int    `json:"IndexNumber"`
}

// NewClient creates a new Jellyfin server client scoped to one user
func NewClient(baseURL, token, userID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
		userID:     userID,
	}
}

// setJellyfinHeaders adds the token and accept headers to a request
func (c *Client) setJellyfinHeaders(req *http.Request) {
	req.Header.Set("X-Emby-Token", c.token)
	req.Header.Set("Accept", "application/json")
}

// getJSON performs a GET against the Jellyfin server and decodes the response
func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setJellyfinHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jellyfin api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("jellyfin request failed: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// LatestItems retrieves the user's most recent items of the given type
// ("Movie" or "Series") sorted by the given field, newest first
func (c *Client) LatestItems(itemType, sortBy string, limit int) ([]Item, error) {
	params := url.Values{}
	params.Set("SortBy", sortBy)
	params.Set("SortOrder", "Descending")
	params.Set("IncludeItemTypes", itemType)
	params.Set("Recursive", "true")
	params.Set("Limit", strconv.Itoa(limit))
	params.Set("Fields", "Path,Overview,Genres,CommunityRating,PremiereDate,Tags")

	var resp itemsResponse
	if err := c.getJSON(fmt.Sprintf("/Users/%s/Items?%s", c.userID, params.Encode()), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SeasonCount counts a series' real seasons, skipping specials (season 0)
func (c *Client) SeasonCount(seriesID string) (int, error) {
	var resp struct {
		Items []season `json:"Items"`
	}
	if err := c.getJSON(fmt.Sprintf("/Shows/%s/Seasons?api_key=%s", seriesID, c.token), &resp); err != nil {
		return 0, err
	}

	count := 0
	for _, s := range resp.Items {
		if s.Type == "Season" && s.IndexNumber > 0 {
			count++
		}
	}
	return count, nil
}

// BackdropURL returns an authenticated URL for an item's backdrop image
func (c *Client) BackdropURL(item Item) string {
	return fmt.Sprintf("%s/Items/%s/Images/Backdrop?api_key=%s", c.baseURL, item.ID, c.token)
}

// LogoURL returns an authenticated URL for an item's clear logo image.
// Jellyfin serves 404 when the item has no logo.
func (c *Client) LogoURL(item Item) string {
	return fmt.Sprintf("%s/Items/%s/Images/Logo?api_key=%s", c.baseURL, item.ID, c.token)
}
