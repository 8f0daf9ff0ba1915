package upcoming

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"promowall/models"
	"promowall/services/radarr"
	"promowall/services/sonarr"
	"promowall/services/tmdb"
)

func tmdbFixture(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/find/79126":
			json.NewEncoder(w).Encode(map[string]any{
				"tv_results": []map[string]any{{"id": 1438}},
			})
		case "/tv/1438":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 1438, "name": "The Wire", "first_air_date": "2002-06-02",
				"number_of_seasons": 5, "backdrop_path": "/wire.jpg",
			})
		case "/tv/1438/images":
			json.NewEncoder(w).Encode(map[string]any{"logos": []any{}})
		case "/movie/949":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 949, "title": "Heat", "release_date": "1995-12-15",
				"runtime": 170, "backdrop_path": "/heat.jpg",
			})
		case "/movie/949/images":
			json.NewEncoder(w).Encode(map[string]any{"logos": []any{}})
		default:
			t.Errorf("unexpected TMDB path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func TestSourceFetchCombinesBothSides(t *testing.T) {
	soon := time.Now().UTC().AddDate(0, 0, 2).Format(time.RFC3339)

	radarrServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "title": "Heat", "tmdbId": 949, "monitored": true, "digitalRelease": soon},
		})
	}))
	defer radarrServer.Close()

	sonarrServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/calendar":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "seriesId": 10, "monitored": true},
			})
		case "/api/v3/series/10":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 10, "title": "The Wire", "tvdbId": 79126, "monitored": true,
			})
		default:
			t.Errorf("unexpected sonarr path: %s", r.URL.Path)
		}
	}))
	defer sonarrServer.Close()

	tmdbServer := httptest.NewServer(tmdbFixture(t))
	defer tmdbServer.Close()

	source := NewSource(
		radarr.NewClient(radarrServer.URL, "rk"),
		sonarr.NewClient(sonarrServer.URL, "sk"),
		tmdb.NewClientWithBaseURL("tok", tmdbServer.URL),
		nil, 14,
	)

	items, err := source.Fetch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 1 show and 1 movie, got %d", len(items))
	}

	show := items[0]
	if show.Kind != models.KindSeries || show.Title != "The Wire" {
		t.Errorf("unexpected show item: %+v", show)
	}
	if show.Label != "New episode coming soon on" {
		t.Errorf("unexpected show label: %s", show.Label)
	}

	movie := items[1]
	if movie.Kind != models.KindMovie || movie.Title != "Heat" {
		t.Errorf("unexpected movie item: %+v", movie)
	}
	if movie.Label != "New movie coming soon on" {
		t.Errorf("unexpected movie label: %s", movie.Label)
	}
}

func TestSourceFetchRadarrOnly(t *testing.T) {
	soon := time.Now().UTC().AddDate(0, 0, 2).Format(time.RFC3339)

	radarrServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "title": "Heat", "tmdbId": 949, "monitored": true, "digitalRelease": soon},
		})
	}))
	defer radarrServer.Close()

	tmdbServer := httptest.NewServer(tmdbFixture(t))
	defer tmdbServer.Close()

	source := NewSource(
		radarr.NewClient(radarrServer.URL, "rk"),
		nil,
		tmdb.NewClientWithBaseURL("tok", tmdbServer.URL),
		nil, 14,
	)

	items, err := source.Fetch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Kind != models.KindMovie {
		t.Fatalf("expected only the radarr movie, got %v", items)
	}
}

func TestSourceFetchSonarrFailureAborts(t *testing.T) {
	sonarrServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer sonarrServer.Close()

	source := NewSource(nil, sonarr.NewClient(sonarrServer.URL, "sk"), tmdb.NewClient("tok"), nil, 14)
	if _, err := source.Fetch(); err == nil {
		t.Fatal("expected error when sonarr is unreachable")
	}
}
