package catalog

import (
	"context"
	"testing"

	"animecal/pkg/database"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewCache(db)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	in := []Anime{
		{
			MalID:        10,
			Title:        "First",
			TitleEnglish: "First EN",
			Airing:       true,
			Status:       "Currently Airing",
			Synopsis:     "a story",
			Score:        7.5,
			Genres:       []Genre{{Name: "Action"}, {Name: "Drama"}},
			Images:       Images{JPG: ImageSet{LargeImageURL: "https://img/large.jpg"}},
		},
		{MalID: 20, Title: "Second"},
	}

	if err := cache.SaveSeason(ctx, in); err != nil {
		t.Fatalf("SaveSeason: %v", err)
	}

	out, err := cache.LoadSeason(ctx)
	if err != nil {
		t.Fatalf("LoadSeason: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].MalID != 10 || out[1].MalID != 20 {
		t.Errorf("order not preserved: %+v", out)
	}

	first := out[0]
	if first.TitleEnglish != "First EN" || !first.Airing || first.Status != "Currently Airing" {
		t.Errorf("fields lost: %+v", first)
	}
	if len(first.Genres) != 2 || first.Genres[0].Name != "Action" {
		t.Errorf("genres lost: %+v", first.Genres)
	}
	if first.Images.JPG.LargeImageURL != "https://img/large.jpg" {
		t.Errorf("image lost: %+v", first.Images)
	}
}

func TestCacheSaveReplacesSnapshot(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SaveSeason(ctx, []Anime{{MalID: 1, Title: "Old"}}); err != nil {
		t.Fatalf("SaveSeason: %v", err)
	}
	if err := cache.SaveSeason(ctx, []Anime{{MalID: 2, Title: "New"}}); err != nil {
		t.Fatalf("SaveSeason: %v", err)
	}

	out, err := cache.LoadSeason(ctx)
	if err != nil {
		t.Fatalf("LoadSeason: %v", err)
	}
	if len(out) != 1 || out[0].MalID != 2 {
		t.Fatalf("expected only the new snapshot, got %+v", out)
	}
}

func TestCacheLoadEmpty(t *testing.T) {
	cache := newTestCache(t)
	out, err := cache.LoadSeason(context.Background())
	if err != nil {
		t.Fatalf("LoadSeason: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", out)
	}
}
