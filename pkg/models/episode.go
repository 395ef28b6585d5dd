package models

import "time"

// Episode is the derived, display-ready representation of one anime's
// upcoming release. Episodes are ephemeral: they are rebuilt on every
// catalog load and never persisted (the catalog is the source of truth;
// release times are synthesized, not authoritative).
type Episode struct {
	ID            string    `json:"id"`             // "{malID}-ep{n}"
	AnimeID       string    `json:"anime_id"`       // catalog id, decimal string
	Title         string    `json:"title"`          // "Episode {n}"
	EpisodeNumber int       `json:"episode_number"`
	SeriesTitle   string    `json:"series_title"`
	ReleaseTime   time.Time `json:"release_time"`
	Duration      string    `json:"duration"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Description   string    `json:"description"`
	Season        string    `json:"season"`
	Genres        []string  `json:"genres"`
	WatchURL      string    `json:"watch_url"`
}

// CalendarDay is one bucket of the 30-day monthly view.
type CalendarDay struct {
	Date     string    `json:"date"` // YYYY-MM-DD, local
	Episodes []Episode `json:"episodes"`
}
