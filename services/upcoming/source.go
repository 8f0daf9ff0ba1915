// Package upcoming renders backgrounds for releases Radarr and Sonarr are
// still waiting on: movies approaching their digital or physical release
// and series with episodes on the airing calendar.
package upcoming

import (
	"log"

	"promowall/models"
	"promowall/services/exclusions"
	"promowall/services/radarr"
	"promowall/services/sonarr"
	"promowall/services/tmdb"
)

const (
	movieLabel   = "New movie coming soon on"
	episodeLabel = "New episode coming soon on"
)

// Source combines Radarr and Sonarr upcoming releases, resolving artwork and
// metadata through TMDB. Either client may be nil to disable that side.
type Source struct {
	radarr    *radarr.Client
	sonarr    *sonarr.Client
	tmdb      *tmdb.Client
	filter    *exclusions.Filter
	daysAhead int
}

// NewSource creates an upcoming-release source scanning daysAhead days out.
func NewSource(radarrClient *radarr.Client, sonarrClient *sonarr.Client, tmdbClient *tmdb.Client, filter *exclusions.Filter, daysAhead int) *Source {
	return &Source{
		radarr:    radarrClient,
		sonarr:    sonarrClient,
		tmdb:      tmdbClient,
		filter:    filter,
		daysAhead: daysAhead,
	}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "upcoming" }

// Fetch collects upcoming movies and episodes and resolves them through
// TMDB. A failure on one side aborts the fetch so a dead service is visible
// in the logs rather than silently producing half the output.
func (s *Source) Fetch() ([]models.MediaItem, error) {
	var items []models.MediaItem

	if s.sonarr != nil {
		tvdbIDs, err := s.sonarr.UpcomingTVDBIDs(s.daysAhead)
		if err != nil {
			return nil, err
		}
		for _, tvdbID := range tvdbIDs {
			tmdbID, err := s.tmdb.FindTVByTVDB(tvdbID)
			if err != nil {
				log.Printf("[Upcoming] tvdb lookup %d: %v", tvdbID, err)
				continue
			}
			if tmdbID == 0 {
				log.Printf("[Upcoming] no TMDB match for TVDB %d", tvdbID)
				continue
			}
			s.append(&items, tmdbID, models.KindSeries, episodeLabel)
		}
	}

	if s.radarr != nil {
		tmdbIDs, err := s.radarr.UpcomingTMDBIDs(s.daysAhead)
		if err != nil {
			return nil, err
		}
		for _, tmdbID := range tmdbIDs {
			s.append(&items, tmdbID, models.KindMovie, movieLabel)
		}
	}

	return items, nil
}

func (s *Source) append(items *[]models.MediaItem, tmdbID int, kind models.MediaKind, label string) {
	item, err := s.tmdb.ResolveItem(tmdbID, kind, s.filter)
	if err != nil {
		log.Printf("[Upcoming] resolve %d: %v", tmdbID, err)
		return
	}
	if item == nil {
		return
	}
	item.Label = label
	*items = append(*items, *item)
}
