package tmdb

import (
	"log"

	"promowall/models"
	"promowall/services/exclusions"
)

// ResolveItem fetches the detail record for a TMDB ID and normalizes it into
// a render-ready item with backdrop and clear-logo URLs. Returns nil without
// error when the record has no backdrop or the filter excludes it; the
// caller fills Label.
func (c *Client) ResolveItem(id int, kind models.MediaKind, filter *exclusions.Filter) (*models.MediaItem, error) {
	var details *Details
	var err error
	mediaType := "movie"
	if kind == models.KindSeries {
		mediaType = "tv"
	}

	if kind == models.KindMovie {
		details, err = c.MovieDetails(id)
	} else {
		details, err = c.TVDetails(id)
	}
	if err != nil {
		return nil, err
	}

	if details.BackdropPath == "" {
		log.Printf("[TMDB] no backdrop for %s, skipping", details.DisplayTitle())
		return nil, nil
	}

	genres := details.GenreNames()
	staleDate := details.ReleaseDate
	if kind == models.KindSeries && details.LastAirDate != "" {
		staleDate = details.LastAirDate
	}
	if filter.Excluded(nil, genres, staleDate, nil) {
		log.Printf("[TMDB] excluded %s", details.DisplayTitle())
		return nil, nil
	}

	item := models.MediaItem{
		Title:       details.DisplayTitle(),
		Overview:    details.Overview,
		Genres:      genres,
		Kind:        kind,
		BackdropURL: ImageURL(details.BackdropPath),
	}
	date := details.ReleaseDate
	if date == "" {
		date = details.FirstAirDate
	}
	if len(date) >= 4 {
		item.Year = date[:4]
	}
	if details.VoteAverage > 0 {
		item.Rating = details.VoteAverage
		item.HasRating = true
	}
	if kind == models.KindMovie {
		item.RuntimeMins = details.Runtime
	} else {
		item.SeasonCount = details.NumberOfSeasons
	}

	logoURL, err := c.LogoURL(mediaType, id)
	if err != nil {
		log.Printf("[TMDB] logo lookup for %s: %v", details.DisplayTitle(), err)
	}
	item.LogoURL = logoURL

	return &item, nil
}
