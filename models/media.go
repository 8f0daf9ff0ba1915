package models

// MediaKind distinguishes movies from TV series.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// MediaItem is the normalized input to the render pipeline. Every catalog
// source (TMDB, Plex, Jellyfin, Trakt, Radarr, Sonarr) converts its own
// response shape into this structure at the boundary; the renderer never
// branches on where an item came from.
type MediaItem struct {
	Title         string
	Overview      string
	Genres        []string // display order matters; renderer keeps the first 3
	Year          string   // 4-digit, may be empty
	Rating        float64  // 0.0-10.0
	HasRating     bool
	Kind          MediaKind
	RuntimeMins   int // movies only
	SeasonCount   int // series only
	ContentRating string

	// Label is the pre-resolved display text drawn above the brand wordmark,
	// e.g. "Now Trending on" or "Recent release, available on".
	Label string

	// BackdropURL and LogoURL point at the source artwork. The orchestrator
	// downloads them; Backdrop and Logo carry the raw bytes into a render.
	BackdropURL string
	LogoURL     string
	Backdrop    []byte
	Logo        []byte
}
