package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Jikan API base (public, unauthenticated)
const defaultBaseURL = "https://api.jikan.moe/v4"

const (
	defaultPageLimit   = 25
	defaultMaxAttempts = 3
	retryBaseDelay     = time.Second
)

// ErrRetriesExhausted is returned when every attempt was consumed by
// rate limiting without reaching a final response.
var ErrRetriesExhausted = errors.New("catalog: retries exhausted")

// Client wraps the Jikan anime catalog API.
//
// Retry policy: 429 responses back off linearly (attempt index x 1s)
// and retry; transport errors retry after a flat 1s; any other non-2xx
// fails immediately with the HTTP status text. Backoff sleeps observe
// the request context, so a cancelled caller aborts the retry chain.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, mirrors).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxAttempts overrides the retry ceiling (defaults to 3).
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithSleeper overrides how backoff sleeps are performed (tests).
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 12 * time.Second},
		maxAttempts: defaultMaxAttempts,
		sleep:       sleepWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentSeason lists the current anime season.
func (c *Client) CurrentSeason(ctx context.Context, page int) (*ListResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", pageOrDefault(page)))
	q.Set("limit", fmt.Sprintf("%d", defaultPageLimit))

	var out ListResponse
	if err := c.getJSON(ctx, "/seasons/now", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleForDay lists anime airing on the given weekday
// (monday..sunday, case-insensitive).
func (c *Client) ScheduleForDay(ctx context.Context, day string) (*ListResponse, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if !validDay(day) {
		return nil, fmt.Errorf("catalog: invalid weekday %q", day)
	}

	var out ListResponse
	if err := c.getJSON(ctx, "/schedules/"+day, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a free-text query ordered by popularity.
func (c *Client) Search(ctx context.Context, query string, page int) (*ListResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", fmt.Sprintf("%d", pageOrDefault(page)))
	q.Set("limit", fmt.Sprintf("%d", defaultPageLimit))
	q.Set("order_by", "popularity")
	q.Set("sort", "asc")

	var out ListResponse
	if err := c.getJSON(ctx, "/anime", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnimeByID fetches a single anime record.
func (c *Client) AnimeByID(ctx context.Context, id int) (*Anime, error) {
	var out SingleResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// TopAnime lists the top-rated anime.
func (c *Client) TopAnime(ctx context.Context, page int) (*ListResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", pageOrDefault(page)))
	q.Set("limit", fmt.Sprintf("%d", defaultPageLimit))

	var out ListResponse
	if err := c.getJSON(ctx, "/top/anime", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("catalog: build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt == c.maxAttempts-1 {
				return fmt.Errorf("catalog: request %s: %w", path, err)
			}
			if err := c.sleep(ctx, retryBaseDelay); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drain(resp)
			if err := c.sleep(ctx, time.Duration(attempt+1)*retryBaseDelay); err != nil {
				return err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("catalog: %s: %s", path, resp.Status)
		}
		if readErr != nil {
			return fmt.Errorf("catalog: read %s: %w", path, readErr)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("catalog: decode %s: %w", path, err)
		}
		return nil
	}

	return ErrRetriesExhausted
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// sleepWithContext blocks for d, returning early if ctx is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func validDay(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
