package jellyfin

import (
	"fmt"
	"log"

	"promowall/models"
	"promowall/services/exclusions"
)

const availableLabel = "Now Available on"

// Source picks the latest movies and series from a Jellyfin server.
type Source struct {
	client *Client
	filter *exclusions.Filter
	limit  int

	// SortBy is the Jellyfin sort field, e.g. "DateCreated" for recently
	// added or "PremiereDate" for recently aired.
	SortBy string

	Movies  bool
	TVShows bool
}

// NewSource creates a Jellyfin source fetching up to limit items per content
// type ordered by creation date.
func NewSource(client *Client, filter *exclusions.Filter, limit int) *Source {
	return &Source{
		client:  client,
		filter:  filter,
		limit:   limit,
		SortBy:  "DateCreated",
		Movies:  true,
		TVShows: true,
	}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "jellyfin" }

// Fetch retrieves the latest items from every enabled content type.
func (s *Source) Fetch() ([]models.MediaItem, error) {
	var items []models.MediaItem

	if s.Movies {
		fetched, err := s.fetchType("Movie")
		if err != nil {
			return nil, err
		}
		items = append(items, fetched...)
	}

	if s.TVShows {
		fetched, err := s.fetchType("Series")
		if err != nil {
			return nil, err
		}
		items = append(items, fetched...)
	}

	return items, nil
}

func (s *Source) fetchType(itemType string) ([]models.MediaItem, error) {
	fetched, err := s.client.LatestItems(itemType, s.SortBy, s.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch latest %s items: %w", itemType, err)
	}

	var out []models.MediaItem
	for _, item := range fetched {
		// PremiereDate arrives as a full ISO timestamp; the filter wants
		// the date part only.
		date := item.PremiereDate
		if len(date) > 10 {
			date = date[:10]
		}
		// Jellyfin tags play the role of exclusion keywords here.
		tags := item.Tags
		if s.filter.Excluded(nil, item.Genres, date, func() ([]string, error) {
			return tags, nil
		}) {
			log.Printf("[Jellyfin] excluded %s", item.Name)
			continue
		}
		out = append(out, s.normalize(item))
	}
	return out, nil
}

func (s *Source) normalize(item Item) models.MediaItem {
	out := models.MediaItem{
		Title:         item.Name,
		Overview:      item.Overview,
		Genres:        item.Genres,
		ContentRating: item.OfficialRating,
		Label:         availableLabel,
		BackdropURL:   s.client.BackdropURL(item),
		LogoURL:       s.client.LogoURL(item),
	}
	if item.ProductionYear > 0 {
		out.Year = fmt.Sprintf("%d", item.ProductionYear)
	} else if len(item.PremiereDate) >= 4 {
		out.Year = item.PremiereDate[:4]
	}
	if item.CommunityRating > 0 {
		out.Rating = item.CommunityRating
		out.HasRating = true
	}

	if item.Type == "Series" {
		out.Kind = models.KindSeries
		count, err := s.client.SeasonCount(item.ID)
		if err != nil {
			log.Printf("[Jellyfin] season count for %s: %v", item.Name, err)
		}
		out.SeasonCount = count
	} else {
		out.Kind = models.KindMovie
		out.RuntimeMins = item.RuntimeMinutes()
	}
	return out
}
