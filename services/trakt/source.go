package trakt

import (
	"fmt"
	"log"

	"promowall/models"
	"promowall/services/exclusions"
	"promowall/services/tmdb"
)

// Source fetches a user's custom Trakt list and resolves each entry's
// artwork and metadata through TMDB.
type Source struct {
	client   *Client
	tmdb     *tmdb.Client
	filter   *exclusions.Filter
	username string
	listName string
	limit    int
}

// NewSource creates a Trakt list source fetching up to limit items.
func NewSource(client *Client, tmdbClient *tmdb.Client, filter *exclusions.Filter, username, listName string, limit int) *Source {
	return &Source{
		client:   client,
		tmdb:     tmdbClient,
		filter:   filter,
		username: username,
		listName: listName,
		limit:    limit,
	}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "trakt" }

// Fetch retrieves the list and normalizes every resolvable entry.
func (s *Source) Fetch() ([]models.MediaItem, error) {
	entries, err := s.client.ListItems(s.username, s.listName)
	if err != nil {
		return nil, fmt.Errorf("fetch list %s: %w", s.listName, err)
	}

	label := fmt.Sprintf("Now on my %s", s.listName)

	var items []models.MediaItem
	for _, entry := range entries {
		if s.limit > 0 && len(items) >= s.limit {
			break
		}

		tmdbID := entry.TMDBID()
		if tmdbID == 0 {
			log.Printf("[Trakt] no TMDB id for %s entry, skipping", entry.Type)
			continue
		}

		kind := models.KindSeries
		if entry.Type == "movie" {
			kind = models.KindMovie
		}

		item, err := s.tmdb.ResolveItem(tmdbID, kind, s.filter)
		if err != nil {
			log.Printf("[Trakt] resolve entry %d: %v", tmdbID, err)
			continue
		}
		if item == nil {
			continue
		}
		item.Label = label
		items = append(items, *item)
	}

	return items, nil
}
