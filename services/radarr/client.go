package radarr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client handles Radarr v3 API interactions for upcoming-release lookups
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Movie represents a monitored movie in Radarr
type Movie struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	TMDBID          int    `json:"tmdbId"`
	Monitored       bool   `json:"monitored"`
	HasFile         bool   `json:"hasFile"`
	DigitalRelease  string `json:"digitalRelease,omitempty"`
	PhysicalRelease string `json:"physicalRelease,omitempty"`
}

// NewClient creates a new Radarr API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// getJSON performs an authenticated GET against the Radarr API
func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("radarr api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("radarr request failed: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Movies retrieves the full movie library
func (c *Client) Movies() ([]Movie, error) {
	var movies []Movie
	if err := c.getJSON("/api/v3/movie", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// UpcomingTMDBIDs returns the TMDB IDs of monitored, not-yet-downloaded
// movies whose digital or physical release falls within the next daysAhead
// days
func (c *Client) UpcomingTMDBIDs(daysAhead int) ([]int, error) {
	movies, err := c.Movies()
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, daysAhead)

	var ids []int
	for _, movie := range movies {
		if !movie.Monitored || movie.HasFile || movie.TMDBID == 0 {
			continue
		}
		if releaseInRange(movie.DigitalRelease, start, end) || releaseInRange(movie.PhysicalRelease, start, end) {
			ids = append(ids, movie.TMDBID)
		}
	}
	return ids, nil
}

// releaseInRange reports whether an ISO 8601 release timestamp falls inside
// [start, end]. Missing or unparseable dates never match.
func releaseInRange(release string, start, end time.Time) bool {
	if release == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, release)
	if err != nil {
		return false
	}
	day := t.UTC().Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}
