package sonarr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func calendarFixture(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("expected X-Api-Key header")
		}
		switch r.URL.Path {
		case "/api/v3/calendar":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "seriesId": 10, "monitored": true},
				{"id": 2, "seriesId": 10, "monitored": true}, // same series twice
				{"id": 3, "seriesId": 20, "monitored": true},
				{"id": 4, "seriesId": 30, "monitored": false},
			})
		case "/api/v3/series/10":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 10, "title": "The Wire", "tvdbId": 79126, "monitored": true,
			})
		case "/api/v3/series/20":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 20, "title": "Paused Show", "tvdbId": 5555, "monitored": false,
			})
		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func TestUpcomingTVDBIDs(t *testing.T) {
	server := httptest.NewServer(calendarFixture(t))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	ids, err := client.UpcomingTVDBIDs(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 1 {
		t.Fatalf("expected 1 series (dedup, unmonitored dropped), got %v", ids)
	}
	if ids[0] != 79126 {
		t.Errorf("expected TVDB 79126, got %d", ids[0])
	}
}

func TestCalendarDateRange(t *testing.T) {
	var gotStart, gotEnd string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if _, err := client.Calendar(start, start.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotStart != "2026-09-01" || gotEnd != "2026-09-08" {
		t.Errorf("unexpected range: %s to %s", gotStart, gotEnd)
	}
}

func TestCalendarErrorSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")
	if _, err := client.UpcomingTVDBIDs(7); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
