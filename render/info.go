package render

import (
	"fmt"
	"strings"

	"promowall/models"
)

// bulletSeparator joins the segments of the info line, two spaces each side.
const bulletSeparator = "  •  "

// maxInfoGenres caps how many genres appear in the info line.
const maxInfoGenres = 3

// FormatRuntime renders a movie runtime as hours and minutes, e.g. 125 ->
// "2h5min". The remainder is not zero padded. Zero or negative minutes mean
// the runtime is unknown.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh%dmin", minutes/60, minutes%60)
}

// FormatSeasons renders a season count with singular/plural handling. Zero
// seasons yields an empty string so the segment is dropped entirely.
func FormatSeasons(count int) string {
	if count <= 0 {
		return ""
	}
	if count == 1 {
		return "1 Season"
	}
	return fmt.Sprintf("%d Seasons", count)
}

// FormatRating renders the rating slot with the brand prefix, rounded to one
// decimal. An absent rating renders as "N/A" rather than disappearing, so the
// bullet layout stays visually consistent across items.
func FormatRating(prefix string, rating float64, present bool) string {
	if !present {
		return prefix + "N/A"
	}
	return fmt.Sprintf("%s%.1f", prefix, rating)
}

// InfoLine builds the bullet-separated metadata line for an item: genres,
// year, duration or season count, optional content rating, rating. Empty
// segments are dropped so there are never doubled separators; the rating slot
// alone falls back to "N/A".
func InfoLine(item models.MediaItem, ratingPrefix string) string {
	var parts []string

	genres := item.Genres
	if len(genres) > maxInfoGenres {
		genres = genres[:maxInfoGenres]
	}
	if len(genres) > 0 {
		parts = append(parts, strings.Join(genres, ", "))
	}

	if item.Year != "" {
		parts = append(parts, item.Year)
	}

	if item.Kind == models.KindSeries {
		if s := FormatSeasons(item.SeasonCount); s != "" {
			parts = append(parts, s)
		}
	} else {
		parts = append(parts, FormatRuntime(item.RuntimeMins))
	}

	if item.ContentRating != "" {
		parts = append(parts, item.ContentRating)
	}

	parts = append(parts, FormatRating(ratingPrefix, item.Rating, item.HasRating))

	return strings.Join(parts, bulletSeparator)
}
