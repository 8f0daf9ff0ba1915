package plex

import (
	"testing"

	"promowall/models"
	"promowall/services/exclusions"
)

func libraryItems() []LibraryItem {
	return []LibraryItem{
		{
			RatingKey: "1", Type: "movie", Title: "Newest Added",
			AddedAt: 400, OriginallyAvailableAt: "2000-01-01",
			Art: "/art/1", Duration: 7200000, Year: 2000,
		},
		{
			RatingKey: "2", Type: "movie", Title: "Newest Aired",
			AddedAt: 100, OriginallyAvailableAt: "2024-01-01",
			Art: "/art/2", Duration: 5400000, Year: 2024,
		},
		{
			RatingKey: "3", Type: "movie", Title: "Middle",
			AddedAt: 200, OriginallyAvailableAt: "2010-01-01",
			Art: "/art/3", Duration: 6000000, Year: 2010,
		},
		{
			RatingKey: "4", Type: "movie", Title: "Other",
			AddedAt: 300, OriginallyAvailableAt: "2005-01-01",
			Art: "/art/4", Duration: 6600000, Year: 2005,
		},
	}
}

func newTestSource(order Order, limit int) *Source {
	return NewSource(NewClient("http://plex.local:32400", "tok"), nil, order, limit)
}

func TestPickAddedOrder(t *testing.T) {
	s := newTestSource(OrderAdded, 2)

	picks := s.pick(libraryItems())
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	if picks[0].item.Title != "Newest Added" {
		t.Errorf("expected newest added first, got %s", picks[0].item.Title)
	}
	if picks[0].label != "New or updated on" {
		t.Errorf("unexpected label: %s", picks[0].label)
	}
}

func TestPickAiredOrder(t *testing.T) {
	s := newTestSource(OrderAired, 2)

	picks := s.pick(libraryItems())
	if picks[0].item.Title != "Newest Aired" {
		t.Errorf("expected newest aired first, got %s", picks[0].item.Title)
	}
	if picks[0].label != "Recent release, available on" {
		t.Errorf("unexpected label: %s", picks[0].label)
	}
}

func TestPickMixedDedupesAcrossGroups(t *testing.T) {
	s := newTestSource(OrderMix, 3)

	picks := s.pick(libraryItems())

	seen := make(map[string]int)
	for _, p := range picks {
		seen[p.item.RatingKey]++
	}
	for key, count := range seen {
		if count > 1 {
			t.Errorf("item %s picked %d times", key, count)
		}
	}

	if picks[0].label != "Recent release, available on" {
		t.Errorf("expected aired group first, got label %s", picks[0].label)
	}
}

func TestPickMixedRoundsLimitUp(t *testing.T) {
	// A limit of 4 rounds to 6, so two per group; with only 4 unique items
	// every item gets picked exactly once.
	s := newTestSource(OrderMix, 4)

	picks := s.pick(libraryItems())
	if len(picks) != 4 {
		t.Fatalf("expected all 4 unique items, got %d", len(picks))
	}
}

func TestNormalizeMovie(t *testing.T) {
	s := newTestSource(OrderAdded, 10)
	item := LibraryItem{
		RatingKey: "100", Type: "movie", Title: "Heat",
		Summary: "A crew of career criminals.", Year: 1995,
		ContentRating: "R", AudienceRating: 8.7, Duration: 10200000,
		Art:    "/library/metadata/100/art/1",
		Genres: []Genre{{Tag: "Crime"}},
	}

	out := s.normalize(item, "New or updated on")

	if out.Kind != models.KindMovie {
		t.Errorf("expected movie kind, got %s", out.Kind)
	}
	if out.RuntimeMins != 170 {
		t.Errorf("expected 170 minutes from ms duration, got %d", out.RuntimeMins)
	}
	if out.Year != "1995" {
		t.Errorf("expected year 1995, got %s", out.Year)
	}
	if !out.HasRating || out.Rating != 8.7 {
		t.Errorf("unexpected rating: %v (has=%v)", out.Rating, out.HasRating)
	}
	if out.BackdropURL == "" || out.LogoURL == "" {
		t.Error("expected artwork URLs to be set")
	}
}

func TestNormalizeShow(t *testing.T) {
	s := newTestSource(OrderAdded, 10)
	item := LibraryItem{
		RatingKey: "200", Type: "show", Title: "The Wire",
		ChildCount: 5, Art: "/art/200",
	}

	out := s.normalize(item, "New or updated on")

	if out.Kind != models.KindSeries {
		t.Errorf("expected series kind, got %s", out.Kind)
	}
	if out.SeasonCount != 5 {
		t.Errorf("expected 5 seasons, got %d", out.SeasonCount)
	}
	if out.HasRating {
		t.Error("expected no rating without audienceRating")
	}
}

func TestFetchTypeAppliesExclusions(t *testing.T) {
	s := newTestSource(OrderAdded, 10)
	s.filter = &exclusions.Filter{Genres: []string{"Crime"}}

	items := []LibraryItem{
		{RatingKey: "1", Type: "movie", Title: "Kept", AddedAt: 2, Art: "/art/1"},
		{
			RatingKey: "2", Type: "movie", Title: "Dropped", AddedAt: 1, Art: "/art/2",
			Genres: []Genre{{Tag: "Crime"}},
		},
		{RatingKey: "3", Type: "movie", Title: "No Art", AddedAt: 3},
	}

	var out []models.MediaItem
	for _, pick := range s.pick(items) {
		if s.filter.Excluded(nil, pick.item.GenreNames(), pick.item.OriginallyAvailableAt, nil) {
			continue
		}
		if pick.item.Art == "" {
			continue
		}
		out = append(out, s.normalize(pick.item, pick.label))
	}

	if len(out) != 1 || out[0].Title != "Kept" {
		t.Fatalf("expected only 'Kept' to survive, got %v", out)
	}
}
