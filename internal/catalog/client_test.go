package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func recordingSleeper(slept *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
}

func TestCurrentSeasonRetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"mal_id":1,"title":"Test","airing":true}],"pagination":{}}`))
	}))
	defer srv.Close()

	var slept []time.Duration
	c := NewClient(WithBaseURL(srv.URL), WithSleeper(recordingSleeper(&slept)))

	resp, err := c.CurrentSeason(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentSeason: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].MalID != 1 {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}

	// linear backoff: attempt 0 waits 1s, attempt 1 waits 2s
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), slept)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d: want %v, got %v", i, want[i], slept[i])
		}
	}
}

func TestServerErrorFailsImmediately(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var slept []time.Duration
	c := NewClient(WithBaseURL(srv.URL), WithSleeper(recordingSleeper(&slept)))

	_, err := c.CurrentSeason(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry status text, got %q", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly 1 request (no retry), got %d", got)
	}
	if len(slept) != 0 {
		t.Errorf("expected no sleeps, got %v", slept)
	}
}

func TestRetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var slept []time.Duration
	c := NewClient(WithBaseURL(srv.URL), WithSleeper(recordingSleeper(&slept)))

	_, err := c.CurrentSeason(context.Background(), 1)
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("want ErrRetriesExhausted, got %v", err)
	}
}

func TestTransportErrorRetriesFlatDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	var slept []time.Duration
	c := NewClient(WithBaseURL(srv.URL), WithSleeper(recordingSleeper(&slept)))

	_, err := c.CurrentSeason(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	// two flat 1s delays between the three attempts
	if len(slept) != 2 || slept[0] != time.Second || slept[1] != time.Second {
		t.Errorf("expected two 1s sleeps, got %v", slept)
	}
}

func TestCancelledContextAbortsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(WithBaseURL(srv.URL), WithSleeper(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := c.CurrentSeason(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestScheduleForDayValidatesWeekday(t *testing.T) {
	c := NewClient()
	if _, err := c.ScheduleForDay(context.Background(), "someday"); err == nil {
		t.Fatal("expected invalid weekday error")
	}
}

func TestAnimeByIDDecodesSingleEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"mal_id":42,"title":"Answer","genres":[{"mal_id":1,"name":"Action"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	a, err := c.AnimeByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("AnimeByID: %v", err)
	}
	if a.MalID != 42 || a.Title != "Answer" || len(a.Genres) != 1 {
		t.Fatalf("unexpected anime: %+v", a)
	}
}
