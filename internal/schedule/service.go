package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"animecal/internal/catalog"
	"animecal/pkg/models"
)

// maxEpisodes caps how many season entries get derived per load.
const maxEpisodes = 20

// clockInterval is how often the display reference time is refreshed.
const clockInterval = 60 * time.Second

// Service loads catalog records, derives episodes once, and holds the
// snapshot. All views filter the held snapshot; nothing re-derives per
// request, so release times stay stable between loads.
//
// Fallback chain on load: live fetch -> cached season snapshot ->
// built-in samples. Catalog failures degrade, they never surface to
// API consumers as errors.
type Service struct {
	client  *catalog.Client
	cache   *catalog.Cache // may be nil
	deriver *Deriver
	now     func() time.Time

	// loadMu serializes loads: the deriver's random source is not safe
	// for concurrent use.
	loadMu sync.Mutex

	mu         sync.RWMutex
	episodes   []models.Episode
	source     string // "live", "cache", "sample"
	displayNow time.Time
}

func NewService(client *catalog.Client, cache *catalog.Cache, deriver *Deriver) *Service {
	return NewServiceAt(client, cache, deriver, time.Now)
}

func NewServiceAt(client *catalog.Client, cache *catalog.Cache, deriver *Deriver, now func() time.Time) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		deriver: deriver,
		now:     now,
	}
}

// Load fetches the current season and replaces the episode snapshot.
// Failures degrade down the fallback chain instead of surfacing, so
// there is nothing for callers to handle.
func (s *Service) Load(ctx context.Context) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	now := s.now()
	items, source := s.fetchSeason(ctx)

	var episodes []models.Episode
	if len(items) == 0 {
		source = "sample"
		episodes = SampleEpisodes(now)
	} else {
		episodes = s.derive(items)
	}

	s.mu.Lock()
	s.episodes = episodes
	s.source = source
	s.displayNow = now
	s.mu.Unlock()

	log.Printf("[schedule] loaded %d episodes (source=%s)", len(episodes), source)
}

func (s *Service) fetchSeason(ctx context.Context) ([]catalog.Anime, string) {
	resp, err := s.client.CurrentSeason(ctx, 1)
	if err == nil {
		if s.cache != nil {
			if err := s.cache.SaveSeason(ctx, resp.Data); err != nil {
				log.Printf("[schedule] cache save failed: %v", err)
			}
		}
		return resp.Data, "live"
	}
	log.Printf("[schedule] live fetch failed: %v", err)

	if s.cache != nil {
		cached, cacheErr := s.cache.LoadSeason(ctx)
		if cacheErr != nil {
			log.Printf("[schedule] cache load failed: %v", cacheErr)
		} else if len(cached) > 0 {
			return cached, "cache"
		}
	}
	return nil, "sample"
}

func (s *Service) derive(items []catalog.Anime) []models.Episode {
	episodes := make([]models.Episode, 0, maxEpisodes)
	for _, a := range items {
		if !a.Airing {
			continue
		}
		episodes = append(episodes, s.deriver.Derive(a, s.deriver.EpisodeHint()))
		if len(episodes) >= maxEpisodes {
			break
		}
	}
	return episodes
}

// Episodes returns a copy of the held snapshot.
func (s *Service) Episodes() []models.Episode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Episode, len(s.episodes))
	copy(out, s.episodes)
	return out
}

// Source reports where the current snapshot came from.
func (s *Service) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// DisplayNow is the coarse reference time used for countdown strings.
func (s *Service) DisplayNow() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.displayNow.IsZero() {
		return s.now()
	}
	return s.displayNow
}

// RunClock refreshes the display reference time every minute until ctx
// is cancelled. It only affects countdown formatting, never derivation.
func (s *Service) RunClock(ctx context.Context) {
	ticker := time.NewTicker(clockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.displayNow = s.now()
			s.mu.Unlock()
		}
	}
}
