package tmdb

import (
	"fmt"
	"log"

	"promowall/models"
	"promowall/services/exclusions"
)

const trendingLabel = "Now Trending on"

// TrendingSource turns TMDB's weekly trending feeds into render-ready items.
// Each feed entry costs one extra details request for runtime or season
// counts and one images request for the clear logo.
type TrendingSource struct {
	client *Client
	filter *exclusions.Filter
	limit  int

	Movies  bool
	TVShows bool
}

// NewTrendingSource creates a trending source fetching up to limit items per
// content type.
func NewTrendingSource(client *Client, filter *exclusions.Filter, limit int) *TrendingSource {
	return &TrendingSource{
		client:  client,
		filter:  filter,
		limit:   limit,
		Movies:  true,
		TVShows: true,
	}
}

// Name identifies the source in logs.
func (s *TrendingSource) Name() string { return "tmdb" }

// Fetch retrieves trending movies and TV shows, applies exclusions and
// normalizes the survivors.
func (s *TrendingSource) Fetch() ([]models.MediaItem, error) {
	var items []models.MediaItem

	if s.Movies {
		movies, err := s.client.TrendingMovies()
		if err != nil {
			return nil, fmt.Errorf("trending movies: %w", err)
		}
		genres, err := s.client.MovieGenres()
		if err != nil {
			return nil, fmt.Errorf("movie genres: %w", err)
		}
		items = append(items, s.normalize(movies, genres, models.KindMovie)...)
	}

	if s.TVShows {
		shows, err := s.client.TrendingTVShows()
		if err != nil {
			return nil, fmt.Errorf("trending tv: %w", err)
		}
		genres, err := s.client.TVGenres()
		if err != nil {
			return nil, fmt.Errorf("tv genres: %w", err)
		}
		items = append(items, s.normalize(shows, genres, models.KindSeries)...)
	}

	return items, nil
}

func (s *TrendingSource) normalize(feed []TrendingItem, genreTable map[int]string, kind models.MediaKind) []models.MediaItem {
	var out []models.MediaItem
	for _, entry := range feed {
		if s.limit > 0 && len(out) >= s.limit {
			break
		}
		if entry.BackdropPath == "" {
			log.Printf("[TMDB] no backdrop for %s, skipping", entry.DisplayTitle())
			continue
		}

		genres := make([]string, 0, len(entry.GenreIDs))
		for _, id := range entry.GenreIDs {
			if name, ok := genreTable[id]; ok {
				genres = append(genres, name)
			}
		}

		details, err := s.details(entry.ID, kind)
		if err != nil {
			log.Printf("[TMDB] details for %s: %v", entry.DisplayTitle(), err)
			continue
		}

		staleDate := entry.AirDate()
		if kind == models.KindSeries && details.LastAirDate != "" {
			staleDate = details.LastAirDate
		}
		if s.filter.Excluded(entry.OriginCountry, genres, staleDate, s.keywordLookup(entry.ID, kind)) {
			log.Printf("[TMDB] excluded %s", entry.DisplayTitle())
			continue
		}

		item := models.MediaItem{
			Title:       entry.DisplayTitle(),
			Overview:    entry.Overview,
			Genres:      genres,
			Kind:        kind,
			Label:       trendingLabel,
			BackdropURL: ImageURL(entry.BackdropPath),
		}
		if len(entry.AirDate()) >= 4 {
			item.Year = entry.AirDate()[:4]
		}
		if entry.VoteAverage > 0 {
			item.Rating = entry.VoteAverage
			item.HasRating = true
		}
		if kind == models.KindMovie {
			item.RuntimeMins = details.Runtime
		} else {
			item.SeasonCount = details.NumberOfSeasons
		}

		mediaType := "movie"
		if kind == models.KindSeries {
			mediaType = "tv"
		}
		logoURL, err := s.client.LogoURL(mediaType, entry.ID)
		if err != nil {
			log.Printf("[TMDB] logo lookup for %s: %v", entry.DisplayTitle(), err)
		}
		item.LogoURL = logoURL

		out = append(out, item)
	}
	return out
}

func (s *TrendingSource) details(id int, kind models.MediaKind) (*Details, error) {
	if kind == models.KindMovie {
		return s.client.MovieDetails(id)
	}
	return s.client.TVDetails(id)
}

func (s *TrendingSource) keywordLookup(id int, kind models.MediaKind) exclusions.KeywordLookup {
	return func() ([]string, error) {
		if kind == models.KindMovie {
			return s.client.MovieKeywords(id)
		}
		return s.client.TVKeywords(id)
	}
}
