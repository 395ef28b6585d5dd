package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"animecal/pkg/models"
)

// Store is the namespaced key-value persistence surface favorites live
// on. Keys are "favorites_{userId}", values JSON-encoded favorite lists.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Service implements per-user favorites as atomic read-modify-write
// cycles against the store. A process-wide mutex serializes mutations;
// conflict resolution across processes is out of scope.
//
// Read failures (missing key, broken JSON) degrade to an empty list and
// are logged, never surfaced. Write failures propagate.
type Service struct {
	store Store

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: func() string { return "fav_" + uuid.NewString() },
	}
}

func storageKey(userID string) string {
	return "favorites_" + userID
}

// List returns the user's favorites, or an empty list when nothing is
// stored or the stored value fails to decode.
func (s *Service) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	raw, ok, err := s.store.Get(ctx, storageKey(userID))
	if err != nil {
		log.Printf("[favorites] read for user %s: %v", userID, err)
		return []models.Favorite{}, nil
	}
	if !ok {
		return []models.Favorite{}, nil
	}

	var out []models.Favorite
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[favorites] decode for user %s: %v", userID, err)
		return []models.Favorite{}, nil
	}
	if out == nil {
		out = []models.Favorite{}
	}
	return out, nil
}

// Add stores a new favorite unless one already exists for the
// (userID, animeID) pair; in that case the existing record is returned
// unchanged. Idempotent.
func (s *Service) Add(ctx context.Context, userID, animeID, animeTitle, animeImage string) (models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, _ := s.List(ctx, userID)
	for _, fav := range list {
		if fav.AnimeID == animeID {
			return fav, nil
		}
	}

	fav := models.Favorite{
		ID:         s.newID(),
		UserID:     userID,
		AnimeID:    animeID,
		AnimeTitle: animeTitle,
		AnimeImage: animeImage,
		CreatedAt:  s.now().UTC(),
	}
	list = append(list, fav)

	if err := s.persist(ctx, userID, list); err != nil {
		return models.Favorite{}, err
	}
	return fav, nil
}

// Remove drops every favorite matching animeID. Removing a favorite
// that does not exist is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, userID, animeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, _ := s.List(ctx, userID)
	kept := make([]models.Favorite, 0, len(list))
	for _, fav := range list {
		if fav.AnimeID != animeID {
			kept = append(kept, fav)
		}
	}

	return s.persist(ctx, userID, kept)
}

// IsFavorite reports whether the pair exists; false on any failure.
func (s *Service) IsFavorite(ctx context.Context, userID, animeID string) bool {
	list, err := s.List(ctx, userID)
	if err != nil {
		return false
	}
	for _, fav := range list {
		if fav.AnimeID == animeID {
			return true
		}
	}
	return false
}

func (s *Service) persist(ctx context.Context, userID string, list []models.Favorite) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode favorites for %s: %w", userID, err)
	}
	if err := s.store.Set(ctx, storageKey(userID), string(b)); err != nil {
		return fmt.Errorf("persist favorites for %s: %w", userID, err)
	}
	return nil
}
