package models

import "time"

// Favorite is a user-scoped pointer to a catalog anime id, persisted
// independently of the catalog. At most one record exists per
// (UserID, AnimeID) pair. A favorite may outlive the anime's presence
// in the current catalog fetch; no referential check is performed.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AnimeID    string    `json:"anime_id"`
	AnimeTitle string    `json:"anime_title"`
	AnimeImage string    `json:"anime_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
