package plex

import (
	"fmt"
	"log"
	"math/rand"

	"promowall/models"
	"promowall/services/exclusions"
)

// Order selects how library items are picked for rendering.
type Order string

const (
	// OrderAdded picks the most recently added items.
	OrderAdded Order = "added"
	// OrderAired picks the most recently released items.
	OrderAired Order = "aired"
	// OrderMix splits the limit evenly across added, aired and random picks.
	OrderMix Order = "mix"
)

// Group labels shown above the wordmark, one per pick group.
const (
	addedLabel   = "New or updated on"
	airedLabel   = "Recent release, available on"
	randomLabel  = "Random pick from"
	defaultLabel = addedLabel
)

// Source picks items from a Plex server's movie and show libraries.
type Source struct {
	client *Client
	filter *exclusions.Filter
	order  Order
	limit  int

	Movies  bool
	TVShows bool

	// rand permutes items for random picks; swapped in tests for
	// deterministic order.
	rand *rand.Rand
}

// NewSource creates a Plex source fetching up to limit items per content
// type with the given pick order.
func NewSource(client *Client, filter *exclusions.Filter, order Order, limit int) *Source {
	return &Source{
		client:  client,
		filter:  filter,
		order:   order,
		limit:   limit,
		Movies:  true,
		TVShows: true,
		rand:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "plex" }

// Fetch retrieves items from every enabled library type.
func (s *Source) Fetch() ([]models.MediaItem, error) {
	var items []models.MediaItem

	if s.Movies {
		picked, err := s.fetchType("movie")
		if err != nil {
			return nil, err
		}
		items = append(items, picked...)
	}

	if s.TVShows {
		picked, err := s.fetchType("show")
		if err != nil {
			return nil, err
		}
		items = append(items, picked...)
	}

	return items, nil
}

func (s *Source) fetchType(sectionType string) ([]models.MediaItem, error) {
	all, err := s.client.AllItems(sectionType)
	if err != nil {
		return nil, fmt.Errorf("fetch %s libraries: %w", sectionType, err)
	}

	var out []models.MediaItem
	for _, pick := range s.pick(all) {
		if s.filter.Excluded(nil, pick.item.GenreNames(), pick.item.OriginallyAvailableAt, nil) {
			log.Printf("[Plex] excluded %s", pick.item.Title)
			continue
		}
		if pick.item.Art == "" {
			log.Printf("[Plex] no art for %s, skipping", pick.item.Title)
			continue
		}
		out = append(out, s.normalize(pick.item, pick.label))
	}
	return out, nil
}

type pickedItem struct {
	item  LibraryItem
	label string
}

// pick applies the configured order. Mix mode rounds the limit up to a
// multiple of three so the groups stay even, and dedupes across groups by
// rating key.
func (s *Source) pick(items []LibraryItem) []pickedItem {
	switch s.order {
	case OrderAired:
		return labelAll(limitTo(SortByAired(items), s.limit), airedLabel)
	case OrderAdded:
		return labelAll(limitTo(SortByAdded(items), s.limit), addedLabel)
	case OrderMix:
		return s.pickMixed(items)
	default:
		log.Printf("[Plex] unknown order %q, using added", s.order)
		return labelAll(limitTo(SortByAdded(items), s.limit), defaultLabel)
	}
}

func (s *Source) pickMixed(items []LibraryItem) []pickedItem {
	limit := s.limit
	if rem := limit % 3; rem != 0 {
		limit += 3 - rem
	}
	perGroup := limit / 3

	shuffled := make([]LibraryItem, len(items))
	copy(shuffled, items)
	s.rand.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})

	seen := make(map[string]bool)
	var picks []pickedItem
	take := func(group []LibraryItem, label string) {
		taken := 0
		for _, item := range group {
			if taken >= perGroup {
				break
			}
			if seen[item.RatingKey] {
				continue
			}
			seen[item.RatingKey] = true
			picks = append(picks, pickedItem{item: item, label: label})
			taken++
		}
	}

	take(SortByAired(items), airedLabel)
	take(SortByAdded(items), addedLabel)
	take(shuffled, randomLabel)
	return picks
}

func (s *Source) normalize(item LibraryItem, label string) models.MediaItem {
	out := models.MediaItem{
		Title:         item.Title,
		Overview:      item.Summary,
		Genres:        item.GenreNames(),
		ContentRating: item.ContentRating,
		Label:         label,
		BackdropURL:   s.client.ArtURL(item),
		LogoURL:       s.client.ClearLogoURL(item),
	}
	if item.Year > 0 {
		out.Year = fmt.Sprintf("%d", item.Year)
	}
	if item.AudienceRating > 0 {
		out.Rating = item.AudienceRating
		out.HasRating = true
	}
	if item.Type == "show" {
		out.Kind = models.KindSeries
		out.SeasonCount = item.ChildCount
	} else {
		out.Kind = models.KindMovie
		out.RuntimeMins = int(item.Duration / 60000)
	}
	return out
}

func limitTo(items []LibraryItem, limit int) []LibraryItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func labelAll(items []LibraryItem, label string) []pickedItem {
	picks := make([]pickedItem, 0, len(items))
	for _, item := range items {
		picks = append(picks, pickedItem{item: item, label: label})
	}
	return picks
}
