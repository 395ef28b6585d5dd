package schedule

import (
	"reflect"
	"testing"
	"time"

	"animecal/pkg/models"
)

func ep(id, series, title string, release time.Time, genres ...string) models.Episode {
	return models.Episode{
		ID:          id,
		SeriesTitle: series,
		Title:       title,
		ReleaseTime: release,
		Genres:      genres,
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	eps := []models.Episode{
		ep("1", "One Piece", "Episode 1", testNow, "Action"),
		ep("2", "Frieren", "Episode 2", testNow, "Fantasy"),
	}

	got := Filter(eps, "", GenreAll)
	if !reflect.DeepEqual(got, eps) {
		t.Errorf("empty query + all genre should be identity, got %+v", got)
	}
}

func TestFilterQueryMatchesSeriesOrEpisodeTitle(t *testing.T) {
	eps := []models.Episode{
		ep("1", "One Piece", "Episode 1", testNow),
		ep("2", "Frieren", "The One Journey", testNow),
		ep("3", "Naruto", "Episode 3", testNow),
	}

	got := Filter(eps, "ONE", GenreAll)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("case-insensitive match against series or title failed: %+v", got)
	}
}

func TestFilterByGenre(t *testing.T) {
	eps := []models.Episode{
		ep("1", "A", "E1", testNow, "Action", "Drama"),
		ep("2", "B", "E2", testNow, "Comedy"),
	}

	got := Filter(eps, "", "Drama")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("genre filter failed: %+v", got)
	}
}

func TestDailySortedAndBounded(t *testing.T) {
	eps := []models.Episode{
		ep("late", "A", "E", testNow.Add(6*24*time.Hour)),
		ep("past", "B", "E", testNow.Add(-time.Hour)),
		ep("soon", "C", "E", testNow.Add(2*time.Hour)),
		ep("beyond", "D", "E", testNow.Add(8*24*time.Hour)),
		ep("mid", "E", "E", testNow.Add(24*time.Hour)),
	}

	got := Daily(eps, testNow)

	wantOrder := []string{"soon", "mid", "late"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d episodes, got %+v", len(wantOrder), got)
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: want %s, got %s", i, id, got[i].ID)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].ReleaseTime.Before(got[i-1].ReleaseTime) {
			t.Errorf("not sorted ascending at %d", i)
		}
	}
}

func TestDailyStableOnTies(t *testing.T) {
	same := testNow.Add(time.Hour)
	eps := []models.Episode{
		ep("first", "A", "E", same),
		ep("second", "B", "E", same),
		ep("third", "C", "E", same),
	}

	got := Daily(eps, testNow)
	for i, id := range []string{"first", "second", "third"} {
		if got[i].ID != id {
			t.Fatalf("tie order not preserved: %+v", got)
		}
	}
}

func TestMonthlyPartitionsEpisodes(t *testing.T) {
	eps := []models.Episode{
		ep("today", "A", "E", testNow.Add(time.Hour)),
		ep("tomorrow", "B", "E", testNow.Add(25*time.Hour)),
		ep("far", "C", "E", testNow.Add(20*24*time.Hour)),
		ep("outside", "D", "E", testNow.Add(40*24*time.Hour)),
		ep("past", "F", "E", testNow.Add(-48*time.Hour)),
	}

	buckets := Monthly(eps, testNow)
	if len(buckets) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(buckets))
	}

	seen := map[string]int{}
	for _, day := range buckets {
		for _, e := range day.Episodes {
			seen[e.ID]++
		}
	}

	// in-range episodes land in exactly one bucket, out-of-range in none
	for _, id := range []string{"today", "tomorrow", "far"} {
		if seen[id] != 1 {
			t.Errorf("%s appeared %d times, want 1", id, seen[id])
		}
	}
	for _, id := range []string{"outside", "past"} {
		if seen[id] != 0 {
			t.Errorf("%s appeared %d times, want 0", id, seen[id])
		}
	}
}

func TestForDateWindowEdges(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	eps := []models.Episode{
		ep("start", "A", "E", day),
		ep("end", "B", "E", day.Add(24*time.Hour-time.Millisecond)),
		ep("next", "C", "E", day.Add(24*time.Hour)),
	}

	got := ForDate(eps, day)
	if len(got) != 2 || got[0].ID != "start" || got[1].ID != "end" {
		t.Errorf("window edges wrong: %+v", got)
	}
}

func TestTimeUntil(t *testing.T) {
	cases := []struct {
		name    string
		release time.Time
		want    string
	}{
		{"released", testNow.Add(-time.Minute), "Available now"},
		{"exactly now", testNow, "Available now"},
		{"under a day", testNow.Add(5*time.Hour + 30*time.Minute), "5h 30m"},
		{"minutes only", testNow.Add(45 * time.Minute), "0h 45m"},
		{"exactly a day", testNow.Add(24 * time.Hour), "1d 0h"},
		{"days", testNow.Add(50 * time.Hour), "2d 2h"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TimeUntil(tc.release, testNow); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGenreOptions(t *testing.T) {
	eps := []models.Episode{
		ep("1", "A", "E", testNow, "Action", "Drama"),
		ep("2", "B", "E", testNow, "Drama", "Comedy"),
	}

	got := GenreOptions(eps)
	want := []string{"all", "Action", "Drama", "Comedy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}
