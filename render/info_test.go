package render

import (
	"strings"
	"testing"

	"promowall/models"
)

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{125, "2h5min"},
		{59, "0h59min"},
		{60, "1h0min"},
		{0, "N/A"},
		{-10, "N/A"},
	}
	for _, tt := range tests {
		if got := FormatRuntime(tt.minutes); got != tt.want {
			t.Errorf("FormatRuntime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatSeasons(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "1 Season"},
		{3, "3 Seasons"},
		{0, ""},
	}
	for _, tt := range tests {
		if got := FormatSeasons(tt.count); got != tt.want {
			t.Errorf("FormatSeasons(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating("TMDB: ", 7.44, true); got != "TMDB: 7.4" {
		t.Errorf("got %q, want %q", got, "TMDB: 7.4")
	}
	if got := FormatRating("TMDB: ", 0, false); got != "TMDB: N/A" {
		t.Errorf("got %q, want %q", got, "TMDB: N/A")
	}
}

func TestInfoLineMovie(t *testing.T) {
	item := models.MediaItem{
		Kind:        models.KindMovie,
		Genres:      []string{"Action", "Comedy"},
		Year:        "2024",
		RuntimeMins: 125,
		Rating:      7.4,
		HasRating:   true,
	}

	got := InfoLine(item, "TMDB: ")
	want := "Action, Comedy  •  2024  •  2h5min  •  TMDB: 7.4"
	if got != want {
		t.Errorf("InfoLine = %q, want %q", got, want)
	}
}

func TestInfoLineSeriesWithContentRating(t *testing.T) {
	item := models.MediaItem{
		Kind:          models.KindSeries,
		Genres:        []string{"Drama"},
		Year:          "2021",
		SeasonCount:   3,
		ContentRating: "TV-MA",
		Rating:        8.1,
		HasRating:     true,
	}

	got := InfoLine(item, "TMDB: ")
	want := "Drama  •  2021  •  3 Seasons  •  TV-MA  •  TMDB: 8.1"
	if got != want {
		t.Errorf("InfoLine = %q, want %q", got, want)
	}
}

func TestInfoLineDropsEmptySegments(t *testing.T) {
	item := models.MediaItem{
		Kind: models.KindSeries,
		Year: "2020",
	}

	got := InfoLine(item, "TMDB: ")
	if strings.Contains(got, bulletSeparator+bulletSeparator) {
		t.Errorf("doubled separator in %q", got)
	}
	if got != "2020  •  TMDB: N/A" {
		t.Errorf("InfoLine = %q, want %q", got, "2020  •  TMDB: N/A")
	}
}

func TestInfoLineCapsGenres(t *testing.T) {
	item := models.MediaItem{
		Kind:        models.KindMovie,
		Genres:      []string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi"},
		RuntimeMins: 90,
	}

	got := InfoLine(item, "TMDB: ")
	if strings.Contains(got, "Horror") || strings.Contains(got, "Sci-Fi") {
		t.Errorf("more than three genres rendered: %q", got)
	}
	if !strings.HasPrefix(got, "Action, Comedy, Drama") {
		t.Errorf("unexpected genre prefix: %q", got)
	}
}
