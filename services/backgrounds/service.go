package backgrounds

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/time/rate"

	"promowall/models"
	"promowall/render"
	"promowall/utils"
)

// maxArtworkBytes caps a single artwork download. Original-size TMDB
// backdrops run a few MB; anything past this is not an image we want.
const maxArtworkBytes = 64 << 20

// Source produces render-ready items from one catalog backend.
type Source interface {
	Name() string
	Fetch() ([]models.MediaItem, error)
}

// Service drives the whole pipeline: it walks every configured source,
// downloads artwork and renders one background per item. Items are processed
// strictly in order; the limiter spaces them out so home servers are not
// hammered.
type Service struct {
	renderer   *render.Renderer
	httpClient *http.Client
	limiter    *rate.Limiter
	outputDir  string
	sources    []Source
}

// NewService creates a background generation service. delaySeconds spaces
// consecutive items; zero or negative disables pacing.
func NewService(renderer *render.Renderer, outputDir string, delaySeconds float64, sources ...Source) *Service {
	limit := rate.Inf
	if delaySeconds > 0 {
		limit = rate.Every(time.Duration(delaySeconds * float64(time.Second)))
	}
	return &Service{
		renderer:   renderer,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(limit, 1),
		outputDir:  outputDir,
		sources:    sources,
	}
}

// Run processes every source in order. A source that fails to fetch is
// logged and skipped; a single item failing never stops the run. Returns the
// number of backgrounds written.
func (s *Service) Run(ctx context.Context) (int, error) {
	saved := 0
	for _, source := range s.sources {
		items, err := source.Fetch()
		if err != nil {
			log.Printf("[Backgrounds] source %s: %v", source.Name(), err)
			continue
		}
		log.Printf("[Backgrounds] source %s returned %d items", source.Name(), len(items))

		for _, item := range items {
			if err := s.limiter.Wait(ctx); err != nil {
				return saved, err
			}
			path, err := s.process(item)
			if err != nil {
				log.Printf("[Backgrounds] %s: %v", item.Title, err)
				continue
			}
			log.Printf("Image saved: %s", path)
			saved++
		}
	}
	return saved, nil
}

// process downloads an item's artwork and renders it.
func (s *Service) process(item models.MediaItem) (string, error) {
	if len(item.Backdrop) == 0 {
		data, err := s.downloadArtwork(item.BackdropURL)
		if err != nil {
			return "", fmt.Errorf("download backdrop: %w", err)
		}
		item.Backdrop = data
	}

	// A failed logo download just means the title gets drawn instead.
	if len(item.Logo) == 0 && item.LogoURL != "" {
		data, err := s.downloadArtwork(item.LogoURL)
		if err != nil {
			log.Printf("[Backgrounds] logo for %s: %v", item.Title, err)
		} else {
			item.Logo = data
		}
	}

	return s.renderer.Render(item, s.outputDir)
}

// downloadArtwork fetches an image URL and verifies the payload actually is
// an image before handing it to the decoder.
func (s *Service) downloadArtwork(rawURL string) ([]byte, error) {
	if err := utils.ValidateArtworkURL(rawURL); err != nil {
		return nil, err
	}

	encoded, err := utils.EncodeURLWithSpaces(rawURL)
	if err != nil {
		return nil, fmt.Errorf("encode url: %w", err)
	}

	resp, err := s.httpClient.Get(encoded)
	if err != nil {
		return nil, fmt.Errorf("fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch failed: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtworkBytes))
	if err != nil {
		return nil, fmt.Errorf("read artwork: %w", err)
	}

	if mime := mimetype.Detect(data); !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("unexpected content type %s", mime.String())
	}

	return data, nil
}
