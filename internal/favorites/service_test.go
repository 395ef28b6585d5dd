package favorites

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	setHits int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setHits++
	f.data[key] = value
	return nil
}

func newTestService(store Store) *Service {
	s := NewService(store)
	n := 0
	s.newID = func() string {
		n++
		return "fav_test_" + string(rune('a'+n-1))
	}
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestListEmptyForUnknownUser(t *testing.T) {
	s := newTestService(newFakeStore())
	got, err := s.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestAddThenListThenRemove(t *testing.T) {
	s := newTestService(newFakeStore())
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", "42", "Test Anime", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	list, _ := s.List(ctx, "u1")
	if len(list) != 1 || list[0].AnimeID != "42" || list[0].AnimeTitle != "Test Anime" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].UserID != "u1" || list[0].ID == "" || list[0].CreatedAt.IsZero() {
		t.Errorf("record fields incomplete: %+v", list[0])
	}

	if err := s.Remove(ctx, "u1", "42"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, _ = s.List(ctx, "u1")
	if len(list) != 0 {
		t.Fatalf("expected empty list after remove, got %+v", list)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s := newTestService(newFakeStore())
	ctx := context.Background()

	first, _ := s.Add(ctx, "u1", "42", "Test Anime", "")
	second, err := s.Add(ctx, "u1", "42", "Renamed", "img.jpg")
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second add should return the existing record")
	}

	list, _ := s.List(ctx, "u1")
	if len(list) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(list))
	}
	if list[0].AnimeTitle != "Test Anime" {
		t.Errorf("existing record must not be overwritten: %+v", list[0])
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	store := newFakeStore()
	s := newTestService(store)
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", "1", "Keeper", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.Remove(ctx, "u1", "does-not-exist"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, _ := s.List(ctx, "u1")
	if len(list) != 1 || list[0].AnimeID != "1" {
		t.Fatalf("stored list should be unchanged, got %+v", list)
	}
}

func TestUsersArePartitioned(t *testing.T) {
	s := newTestService(newFakeStore())
	ctx := context.Background()

	_, _ = s.Add(ctx, "u1", "42", "Mine", "")
	_, _ = s.Add(ctx, "u2", "99", "Theirs", "")

	u1, _ := s.List(ctx, "u1")
	u2, _ := s.List(ctx, "u2")
	if len(u1) != 1 || u1[0].AnimeID != "42" {
		t.Errorf("u1 list wrong: %+v", u1)
	}
	if len(u2) != 1 || u2[0].AnimeID != "99" {
		t.Errorf("u2 list wrong: %+v", u2)
	}
}

func TestCorruptValueReadsAsEmpty(t *testing.T) {
	store := newFakeStore()
	store.data["favorites_u1"] = "{not json"
	s := newTestService(store)

	list, err := s.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("parse failures must be swallowed, got %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestIsFavorite(t *testing.T) {
	store := newFakeStore()
	s := newTestService(store)
	ctx := context.Background()

	if s.IsFavorite(ctx, "u1", "42") {
		t.Error("empty store should report false")
	}
	_, _ = s.Add(ctx, "u1", "42", "Test", "")
	if !s.IsFavorite(ctx, "u1", "42") {
		t.Error("expected true after add")
	}

	store.getErr = errors.New("disk on fire")
	if s.IsFavorite(ctx, "u1", "42") {
		t.Error("store failure should report false, not propagate")
	}
}

func TestWriteErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("readonly")
	s := newTestService(store)

	if _, err := s.Add(context.Background(), "u1", "42", "Test", ""); err == nil {
		t.Error("Add should propagate write errors")
	}
	if err := s.Remove(context.Background(), "u1", "42"); err == nil {
		t.Error("Remove should propagate write errors")
	}
}
