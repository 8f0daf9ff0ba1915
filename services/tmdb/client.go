package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	tmdbAPIBaseURL   = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/original"
)

// Client handles TMDB API interactions for trending feeds, details, genre
// tables, clear logos and external-ID lookups
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// TrendingItem represents one entry of a trending feed. Movie entries carry
// Title/ReleaseDate, TV entries carry Name/FirstAirDate.
type TrendingItem struct {
	ID            int      `json:"id"`
	Title         string   `json:"title,omitempty"`
	Name          string   `json:"name,omitempty"`
	Overview      string   `json:"overview"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	FirstAirDate  string   `json:"first_air_date,omitempty"`
	VoteAverage   float64  `json:"vote_average"`
	GenreIDs      []int    `json:"genre_ids"`
	BackdropPath  string   `json:"backdrop_path"`
	OriginCountry []string `json:"origin_country,omitempty"`
}

// DisplayTitle returns the movie title or show name, whichever is set
func (t TrendingItem) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// AirDate returns the release date or first air date, whichever is set
func (t TrendingItem) AirDate() string {
	if t.ReleaseDate != "" {
		return t.ReleaseDate
	}
	return t.FirstAirDate
}

// Details represents the full detail record for a movie or TV show
type Details struct {
	ID              int     `json:"id"`
	Title           string  `json:"title,omitempty"`
	Name            string  `json:"name,omitempty"`
	Overview        string  `json:"overview"`
	ReleaseDate     string  `json:"release_date,omitempty"`
	FirstAirDate    string  `json:"first_air_date,omitempty"`
	LastAirDate     string  `json:"last_air_date,omitempty"`
	VoteAverage     float64 `json:"vote_average"`
	Runtime         int     `json:"runtime,omitempty"`
	NumberOfSeasons int     `json:"number_of_seasons,omitempty"`
	BackdropPath    string  `json:"backdrop_path"`
	Genres          []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// DisplayTitle returns the movie title or show name, whichever is set
func (d Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// GenreNames returns the detail record's genre names in order
func (d Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// NewClient creates a new TMDB API client using a read access token
func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, tmdbAPIBaseURL)
}

// NewClientWithBaseURL creates a client against a non-default API endpoint,
// for proxies and test servers
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// setTMDBHeaders adds the bearer token and accept headers to a request
func (c *Client) setTMDBHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// getJSON performs a GET against the TMDB API and decodes the response into out
func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setTMDBHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tmdb request failed: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// TrendingMovies retrieves this week's trending movies
func (c *Client) TrendingMovies() ([]TrendingItem, error) {
	var result struct {
		Results []TrendingItem `json:"results"`
	}
	if err := c.getJSON("/trending/movie/week?language=en-US", &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// TrendingTVShows retrieves this week's trending TV shows
func (c *Client) TrendingTVShows() ([]TrendingItem, error) {
	var result struct {
		Results []TrendingItem `json:"results"`
	}
	if err := c.getJSON("/trending/tv/week?language=en-US", &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// MovieGenres retrieves the movie genre ID to name table
func (c *Client) MovieGenres() (map[int]string, error) {
	return c.genreTable("/genre/movie/list?language=en-US")
}

// TVGenres retrieves the TV genre ID to name table
func (c *Client) TVGenres() (map[int]string, error) {
	return c.genreTable("/genre/tv/list?language=en-US")
}

func (c *Client) genreTable(path string) (map[int]string, error) {
	var result struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.getJSON(path, &result); err != nil {
		return nil, err
	}

	table := make(map[int]string, len(result.Genres))
	for _, g := range result.Genres {
		table[g.ID] = g.Name
	}
	return table, nil
}

// MovieDetails retrieves the full detail record for a movie
func (c *Client) MovieDetails(id int) (*Details, error) {
	var details Details
	if err := c.getJSON(fmt.Sprintf("/movie/%d?language=en-US", id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// TVDetails retrieves the full detail record for a TV show
func (c *Client) TVDetails(id int) (*Details, error) {
	var details Details
	if err := c.getJSON(fmt.Sprintf("/tv/%d?language=en-US", id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// LogoURL returns the full image URL of the first English PNG clear logo for
// a movie or TV show, or "" when none exists. mediaType is "movie" or "tv".
func (c *Client) LogoURL(mediaType string, id int) (string, error) {
	var result struct {
		Logos []struct {
			FilePath string `json:"file_path"`
			ISO6391  string `json:"iso_639_1"`
		} `json:"logos"`
	}
	if err := c.getJSON(fmt.Sprintf("/%s/%d/images?language=en", mediaType, id), &result); err != nil {
		return "", err
	}

	for _, logo := range result.Logos {
		if logo.ISO6391 == "en" && strings.HasSuffix(logo.FilePath, ".png") {
			return ImageURL(logo.FilePath), nil
		}
	}
	return "", nil
}

// MovieKeywords retrieves the lowercased keyword names attached to a movie
func (c *Client) MovieKeywords(id int) ([]string, error) {
	var result struct {
		Keywords []struct {
			Name string `json:"name"`
		} `json:"keywords"`
	}
	if err := c.getJSON(fmt.Sprintf("/movie/%d/keywords", id), &result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Keywords))
	for _, k := range result.Keywords {
		names = append(names, strings.ToLower(k.Name))
	}
	return names, nil
}

// TVKeywords retrieves the lowercased keyword names attached to a TV show
func (c *Client) TVKeywords(id int) ([]string, error) {
	var result struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := c.getJSON(fmt.Sprintf("/tv/%d/keywords", id), &result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Results))
	for _, k := range result.Results {
		names = append(names, strings.ToLower(k.Name))
	}
	return names, nil
}

// FindTVByTVDB resolves a TVDB series ID to a TMDB TV ID, returning 0 when
// TMDB has no matching record
func (c *Client) FindTVByTVDB(tvdbID int) (int, error) {
	var result struct {
		TVResults []struct {
			ID int `json:"id"`
		} `json:"tv_results"`
	}
	if err := c.getJSON(fmt.Sprintf("/find/%d?external_source=tvdb_id", tvdbID), &result); err != nil {
		return 0, err
	}

	if len(result.TVResults) == 0 {
		return 0, nil
	}
	return result.TVResults[0].ID, nil
}

// ImageURL returns the full original-size image URL for a TMDB file path
func ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + path
}
