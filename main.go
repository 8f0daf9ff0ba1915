package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"promowall/config"
	"promowall/render"
	"promowall/services/backgrounds"
	"promowall/services/exclusions"
	"promowall/services/jellyfin"
	"promowall/services/plex"
	"promowall/services/radarr"
	"promowall/services/sonarr"
	"promowall/services/tmdb"
	"promowall/services/trakt"
	"promowall/services/upcoming"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	fs := afero.NewOsFs()

	// The output directory is rebuilt from scratch each run; stale
	// backgrounds from the previous run would otherwise linger.
	if err := fs.RemoveAll(cfg.OutputDir); err != nil {
		log.Fatalf("Failed to clear output directory: %v", err)
	}
	if err := fs.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	httpc := &http.Client{Timeout: 30 * time.Second}
	fontPath, err := render.EnsureFont(fs, httpc, cfg.FontDir, render.PreferredFont(cfg.FontURL, cfg.FontName))
	if err != nil {
		log.Fatalf("Failed to obtain a usable font: %v", err)
	}
	fonts, err := render.LoadFontSet(fs, fontPath)
	if err != nil {
		log.Fatalf("Failed to load font %s: %v", fontPath, err)
	}

	assets, err := render.LoadBrandAssets(fs, cfg.AssetsDir, cfg.Render.Strategy)
	if err != nil {
		log.Fatalf("Failed to load brand assets: %v", err)
	}

	writer := render.NewOutputWriter(fs, cfg.Render.JPEGQuality, cfg.Render.DateSuffix)
	renderer := render.NewRenderer(cfg.Render, fonts, assets, writer)

	filter := exclusions.NewFilter(cfg.ExcludedGenres, cfg.ExcludedKeywords, cfg.ExcludedCountries, cfg.StaleAfterDays)

	sources := buildSources(cfg, filter)
	if len(sources) == 0 {
		log.Fatal("No sources configured; set TMDB_API_TOKEN, PLEX_BASEURL/PLEX_TOKEN or similar credentials")
	}

	svc := backgrounds.NewService(renderer, cfg.OutputDir, cfg.DelaySeconds, sources...)
	saved, err := svc.Run(context.Background())
	if err != nil {
		log.Fatalf("Background generation aborted: %v", err)
	}
	log.Printf("Done: %d backgrounds written to %s", saved, cfg.OutputDir)
}

// buildSources wires up every source with credentials present in the
// configuration. Sources with missing credentials are simply not built.
func buildSources(cfg config.Config, filter *exclusions.Filter) []backgrounds.Source {
	var sources []backgrounds.Source

	var tmdbClient *tmdb.Client
	if cfg.TMDBToken != "" {
		tmdbClient = tmdb.NewClient(cfg.TMDBToken)
		sources = append(sources, tmdb.NewTrendingSource(tmdbClient, filter, cfg.Limit))
	}

	if cfg.PlexBaseURL != "" && cfg.PlexToken != "" {
		client := plex.NewClient(cfg.PlexBaseURL, cfg.PlexToken)
		sources = append(sources, plex.NewSource(client, filter, plex.OrderMix, cfg.Limit))
	}

	if cfg.JellyfinBaseURL != "" && cfg.JellyfinToken != "" && cfg.JellyfinUserID != "" {
		client := jellyfin.NewClient(cfg.JellyfinBaseURL, cfg.JellyfinToken, cfg.JellyfinUserID)
		sources = append(sources, jellyfin.NewSource(client, filter, cfg.Limit))
	}

	if tmdbClient != nil && cfg.TraktClientID != "" && cfg.TraktUsername != "" && cfg.TraktList != "" {
		client := trakt.NewClient(cfg.TraktClientID)
		sources = append(sources, trakt.NewSource(client, tmdbClient, filter, cfg.TraktUsername, cfg.TraktList, cfg.Limit))
	}

	if tmdbClient != nil {
		var radarrClient *radarr.Client
		var sonarrClient *sonarr.Client
		if cfg.RadarrURL != "" && cfg.RadarrAPIKey != "" {
			radarrClient = radarr.NewClient(cfg.RadarrURL, cfg.RadarrAPIKey)
		}
		if cfg.SonarrURL != "" && cfg.SonarrAPIKey != "" {
			sonarrClient = sonarr.NewClient(cfg.SonarrURL, cfg.SonarrAPIKey)
		}
		if radarrClient != nil || sonarrClient != nil {
			sources = append(sources, upcoming.NewSource(radarrClient, sonarrClient, tmdbClient, filter, cfg.DaysAhead))
		}
	}

	return sources
}
