package config

import (
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"promowall/render"
)

// Config is the full application configuration, assembled once at startup
// from environment variables and passed down as a value. Bad values for
// cosmetic settings (colors, offsets) fall back to defaults instead of
// stopping the run; missing credentials simply disable the matching source.
type Config struct {
	Render render.Options

	OutputDir string
	AssetsDir string
	FontDir   string
	FontURL   string
	FontName  string
	LogFile   string

	// Limit caps items per source; DelaySeconds is the courtesy pause
	// between items to keep load off the catalog services.
	Limit        int
	DelaySeconds float64

	TMDBToken string

	PlexBaseURL string
	PlexToken   string

	JellyfinBaseURL string
	JellyfinToken   string
	JellyfinUserID  string

	TraktClientID string
	TraktUsername string
	TraktList     string

	RadarrURL    string
	RadarrAPIKey string
	SonarrURL    string
	SonarrAPIKey string
	// DaysAhead is how far the Radarr/Sonarr release window extends.
	DaysAhead int

	ExcludedGenres   []string
	ExcludedKeywords []string
	// ExcludedCountries maps ISO 3166-1 alpha-2 codes to the genres excluded
	// for that country; "*" excludes the country outright. Env format:
	// "jp:Animation|Drama;kr:*".
	ExcludedCountries map[string][]string
	StaleAfterDays    int
}

// Load reads the environment and returns a validated configuration.
func Load() Config {
	opts := render.DefaultOptions()

	opts.Strategy = parseStrategy(os.Getenv("PROMOWALL_STRATEGY"), opts.Strategy)
	opts.Colors.Main = ParseColor(os.Getenv("PROMOWALL_MAIN_COLOR"), opts.Colors.Main)
	opts.Colors.Info = ParseColor(os.Getenv("PROMOWALL_INFO_COLOR"), opts.Colors.Info)
	opts.Colors.Summary = ParseColor(os.Getenv("PROMOWALL_SUMMARY_COLOR"), opts.Colors.Summary)
	opts.Colors.Metadata = ParseColor(os.Getenv("PROMOWALL_METADATA_COLOR"), opts.Colors.Metadata)
	opts.Colors.Shadow = ParseColor(os.Getenv("PROMOWALL_SHADOW_COLOR"), opts.Colors.Shadow)
	opts.ShadowOffset = envInt("PROMOWALL_SHADOW_OFFSET", opts.ShadowOffset)
	opts.MaxSummaryChars = envInt("PROMOWALL_MAX_SUMMARY_CHARS", opts.MaxSummaryChars)
	opts.MaxSummaryWidth = envInt("PROMOWALL_MAX_SUMMARY_WIDTH", opts.MaxSummaryWidth)
	opts.MaxSummaryLines = envInt("PROMOWALL_MAX_SUMMARY_LINES", opts.MaxSummaryLines)
	opts.LogoBoxWidth = envInt("PROMOWALL_LOGO_BOX_WIDTH", opts.LogoBoxWidth)
	opts.LogoBoxHeight = envInt("PROMOWALL_LOGO_BOX_HEIGHT", opts.LogoBoxHeight)
	opts.RatingPrefix = envString("PROMOWALL_RATING_PREFIX", opts.RatingPrefix)
	opts.DateSuffix = envBool("PROMOWALL_DATE_SUFFIX", opts.DateSuffix)
	opts.JPEGQuality = envInt("PROMOWALL_JPEG_QUALITY", opts.JPEGQuality)

	opts.Vignette.FadeRatio = envFloat("PROMOWALL_FADE_RATIO", opts.Vignette.FadeRatio)
	opts.Vignette.FadePower = envFloat("PROMOWALL_FADE_POWER", opts.Vignette.FadePower)
	opts.Vignette.BlurRadius = envFloat("PROMOWALL_BLUR_RADIUS", opts.Vignette.BlurRadius)
	opts.Vignette.DitherStrength = envFloat("PROMOWALL_DITHER_STRENGTH", opts.Vignette.DitherStrength)
	opts.Vignette.DarkenFactor = envFloat("PROMOWALL_DARKEN_FACTOR", opts.Vignette.DarkenFactor)

	return Config{
		Render:    opts,
		OutputDir: envString("PROMOWALL_OUTPUT_DIR", "backgrounds"),
		AssetsDir: envString("PROMOWALL_ASSETS_DIR", "assets"),
		FontDir:   envString("PROMOWALL_FONT_DIR", "."),
		FontURL:   os.Getenv("PROMOWALL_FONT_URL"),
		FontName:  os.Getenv("PROMOWALL_FONT_NAME"),
		LogFile:   os.Getenv("PROMOWALL_LOG_FILE"),

		Limit:        envInt("PROMOWALL_LIMIT", 10),
		DelaySeconds: envFloat("PROMOWALL_DELAY_SECONDS", 1.0),

		TMDBToken: os.Getenv("TMDB_API_TOKEN"),

		PlexBaseURL: os.Getenv("PLEX_BASEURL"),
		PlexToken:   os.Getenv("PLEX_TOKEN"),

		JellyfinBaseURL: os.Getenv("JELLYFIN_BASEURL"),
		JellyfinToken:   os.Getenv("JELLYFIN_TOKEN"),
		JellyfinUserID:  os.Getenv("JELLYFIN_USER_ID"),

		TraktClientID: os.Getenv("TRAKT_CLIENT_ID"),
		TraktUsername: os.Getenv("TRAKT_USERNAME"),
		TraktList:     os.Getenv("TRAKT_LIST"),

		RadarrURL:    os.Getenv("RADARR_URL"),
		RadarrAPIKey: os.Getenv("RADARR_API_KEY"),
		SonarrURL:    os.Getenv("SONARR_URL"),
		SonarrAPIKey: os.Getenv("SONARR_API_KEY"),
		DaysAhead:    envInt("DAYS_AHEAD", 14),

		ExcludedGenres:    splitList(os.Getenv("PROMOWALL_EXCLUDED_GENRES")),
		ExcludedKeywords:  splitList(os.Getenv("PROMOWALL_EXCLUDED_KEYWORDS")),
		ExcludedCountries: parseCountryMap(os.Getenv("PROMOWALL_EXCLUDED_COUNTRIES")),
		StaleAfterDays:    envInt("PROMOWALL_STALE_AFTER_DAYS", 90),
	}
}

var namedColors = map[string]color.NRGBA{
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"black":  {A: 255},
	"gray":   {R: 150, G: 150, B: 150, A: 255},
	"grey":   {R: 150, G: 150, B: 150, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
}

// ParseColor accepts a color name or an "R,G,B" triple. Anything else keeps
// the default; bad color configuration must never stop a run.
func ParseColor(s string, def color.Color) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return def
	}
	if c, ok := namedColors[s]; ok {
		return c
	}

	parts := strings.Split(s, ",")
	if len(parts) == 3 {
		var vals [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				log.Printf("[Config] invalid color %q, using default", s)
				return def
			}
			vals[i] = uint8(n)
		}
		return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
	}

	log.Printf("[Config] invalid color %q, using default", s)
	return def
}

func parseStrategy(s string, def render.Strategy) render.Strategy {
	switch render.Strategy(strings.TrimSpace(strings.ToLower(s))) {
	case render.StaticOverlay:
		return render.StaticOverlay
	case render.GeneratedVignette:
		return render.GeneratedVignette
	case "":
		return def
	default:
		log.Printf("[Config] unknown strategy %q, using %q", s, def)
		return def
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCountryMap parses "jp:Animation|Drama;kr:*" into a country->genres
// exclusion map.
func parseCountryMap(s string) map[string][]string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	out := make(map[string][]string)
	for _, entry := range strings.Split(s, ";") {
		country, genres, ok := strings.Cut(entry, ":")
		country = strings.ToLower(strings.TrimSpace(country))
		if country == "" {
			continue
		}
		if !ok || strings.TrimSpace(genres) == "" {
			out[country] = []string{"*"}
			continue
		}
		var list []string
		for _, g := range strings.Split(genres, "|") {
			if g = strings.TrimSpace(g); g != "" {
				list = append(list, g)
			}
		}
		out[country] = list
	}
	return out
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %g", key, v, def)
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %v", key, v, def)
		return def
	}
	return b
}
