package sonarr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client handles Sonarr v3 API interactions for airing-calendar lookups
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Episode represents one calendar entry
type Episode struct {
	ID        int  `json:"id"`
	SeriesID  int  `json:"seriesId"`
	Monitored bool `json:"monitored"`
}

// Series represents a monitored series in Sonarr
type Series struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	TVDBID    int    `json:"tvdbId"`
	Monitored bool   `json:"monitored"`
}

// NewClient creates a new Sonarr API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// getJSON performs an authenticated GET against the Sonarr API
func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sonarr api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sonarr request failed: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Calendar retrieves the episodes airing between start and end
func (c *Client) Calendar(start, end time.Time) ([]Episode, error) {
	path := fmt.Sprintf("/api/v3/calendar?start=%s&end=%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	var episodes []Episode
	if err := c.getJSON(path, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// SeriesByID retrieves one series record
func (c *Client) SeriesByID(id int) (*Series, error) {
	var series Series
	if err := c.getJSON(fmt.Sprintf("/api/v3/series/%d", id), &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// UpcomingTVDBIDs returns the TVDB IDs of monitored series with monitored
// episodes airing within the next daysAhead days, deduplicated
func (c *Client) UpcomingTVDBIDs(daysAhead int) ([]int, error) {
	start := time.Now().UTC()
	episodes, err := c.Calendar(start, start.AddDate(0, 0, daysAhead))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ids []int
	for _, ep := range episodes {
		if !ep.Monitored || ep.SeriesID == 0 || seen[ep.SeriesID] {
			continue
		}
		seen[ep.SeriesID] = true

		series, err := c.SeriesByID(ep.SeriesID)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", ep.SeriesID, err)
		}
		if series.Monitored && series.TVDBID != 0 {
			ids = append(ids, series.TVDBID)
		}
	}
	return ids, nil
}
