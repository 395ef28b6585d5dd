package schedule

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"animecal/internal/catalog"
	"animecal/pkg/models"
)

const (
	// releaseWindow bounds the synthesized release offset: every derived
	// episode lands within the next 7 days.
	releaseWindow = 7 * 24 * time.Hour

	descriptionLimit = 200
	noDescription    = "No description available"
	defaultDuration  = "24m"

	watchSearchBase = "https://crunchyroll.com/search"
)

// Deriver turns catalog records into display-ready episodes. Release
// times are synthesized (now + uniform random offset across the next
// 7 days), so the same record derives to different times on different
// calls: derive once and hold the result, never re-derive per render.
//
// The random source is seeded and the clock injectable so tests can pin
// exact values.
type Deriver struct {
	now func() time.Time
	rng *rand.Rand
}

func NewDeriver(seed int64) *Deriver {
	return NewDeriverAt(seed, time.Now)
}

func NewDeriverAt(seed int64, now func() time.Time) *Deriver {
	return &Deriver{
		now: now,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// EpisodeHint picks a plausible in-progress episode number (1-12).
func (d *Deriver) EpisodeHint() int {
	return 1 + d.rng.Intn(12)
}

// Derive builds one episode from a catalog record. Missing fields are
// defaulted, never rejected.
func (d *Deriver) Derive(a catalog.Anime, episodeNumber int) models.Episode {
	now := d.now()
	offset := time.Duration(d.rng.Int63n(int64(releaseWindow)))

	series := a.TitleEnglish
	if series == "" {
		series = a.Title
	}

	season := "Completed"
	if a.Airing || a.Status == "Currently Airing" {
		season = "Current Season"
	}

	genres := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		if g.Name != "" {
			genres = append(genres, g.Name)
		}
	}

	return models.Episode{
		ID:            fmt.Sprintf("%d-ep%d", a.MalID, episodeNumber),
		AnimeID:       fmt.Sprintf("%d", a.MalID),
		Title:         fmt.Sprintf("Episode %d", episodeNumber),
		EpisodeNumber: episodeNumber,
		SeriesTitle:   series,
		ReleaseTime:   now.Add(offset),
		Duration:      defaultDuration,
		Thumbnail:     pickThumbnail(a.Images),
		Description:   describeSynopsis(a.Synopsis),
		Season:        season,
		Genres:        genres,
		WatchURL:      watchSearchBase + "?q=" + url.QueryEscape(a.Title),
	}
}

func pickThumbnail(img catalog.Images) string {
	if img.JPG.LargeImageURL != "" {
		return img.JPG.LargeImageURL
	}
	if img.JPG.ImageURL != "" {
		return img.JPG.ImageURL
	}
	return img.JPG.SmallImageURL
}

func describeSynopsis(synopsis string) string {
	if synopsis == "" {
		return noDescription
	}
	runes := []rune(synopsis)
	if len(runes) <= descriptionLimit {
		return synopsis + "..."
	}
	return string(runes[:descriptionLimit]) + "..."
}
