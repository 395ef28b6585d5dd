package schedule

import (
	"time"

	"animecal/pkg/models"
)

// SampleEpisodes is the built-in fallback used when both the live
// catalog and the cached snapshot are unavailable. Release offsets are
// relative to now so the views stay populated.
func SampleEpisodes(now time.Time) []models.Episode {
	return []models.Episode{
		{
			ID:            "sample-1",
			AnimeID:       "sample-aot-final",
			Title:         "The Beginning of Everything",
			EpisodeNumber: 1,
			SeriesTitle:   "Attack on Titan: Final Season",
			ReleaseTime:   now.Add(2 * time.Hour),
			Duration:      "24m",
			Description:   "The final battle begins as humanity faces its greatest threat yet.",
			Season:        "Final Season",
			Genres:        []string{"Action", "Drama", "Fantasy"},
			WatchURL:      "https://crunchyroll.com",
		},
		{
			ID:            "sample-2",
			AnimeID:       "sample-demon-slayer",
			Title:         "New Horizons",
			EpisodeNumber: 12,
			SeriesTitle:   "Demon Slayer: Hashira Training Arc",
			ReleaseTime:   now.Add(6 * time.Hour),
			Duration:      "23m",
			Description:   "Tanjiro continues his training with the Hashira to prepare for the final battle.",
			Season:        "Hashira Training Arc",
			Genres:        []string{"Action", "Supernatural", "Historical"},
			WatchURL:      "https://crunchyroll.com",
		},
		{
			ID:            "sample-3",
			AnimeID:       "sample-jjk-s2",
			Title:         "The Power Within",
			EpisodeNumber: 8,
			SeriesTitle:   "Jujutsu Kaisen Season 2",
			ReleaseTime:   now.Add(24 * time.Hour),
			Duration:      "24m",
			Description:   "Yuji discovers new abilities as the Shibuya Incident reaches its climax.",
			Season:        "Season 2",
			Genres:        []string{"Action", "Supernatural", "School"},
			WatchURL:      "https://crunchyroll.com",
		},
		{
			ID:            "sample-4",
			AnimeID:       "sample-mha-s7",
			Title:         "Bonds of Friendship",
			EpisodeNumber: 15,
			SeriesTitle:   "My Hero Academia Season 7",
			ReleaseTime:   now.Add(48 * time.Hour),
			Duration:      "23m",
			Description:   "Class 1-A faces their toughest challenge yet in the final war arc.",
			Season:        "Season 7",
			Genres:        []string{"Action", "Superhero", "School"},
			WatchURL:      "https://crunchyroll.com",
		},
		{
			ID:            "sample-5",
			AnimeID:       "sample-one-piece",
			Title:         "The Ultimate Technique",
			EpisodeNumber: 3,
			SeriesTitle:   "One Piece: Egghead Arc",
			ReleaseTime:   now.Add(72 * time.Hour),
			Duration:      "24m",
			Description:   "Luffy and the crew explore the futuristic Egghead Island.",
			Season:        "Egghead Arc",
			Genres:        []string{"Action", "Adventure", "Comedy"},
			WatchURL:      "https://crunchyroll.com",
		},
	}
}
