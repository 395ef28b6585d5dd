package sync

import "time"

const (
	EventFavoriteAdd    = "favorite.add"
	EventFavoriteRemove = "favorite.remove"
)

// FavoriteEvent is broadcast to connected clients when a user's
// favorites change.
type FavoriteEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	AnimeID    string    `json:"anime_id"`
	AnimeTitle string    `json:"anime_title,omitempty"`
	At         time.Time `json:"at"`
}
