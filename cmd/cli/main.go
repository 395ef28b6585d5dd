package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"

	"animecal/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type episodeListResponse struct {
	Total    int    `json:"total"`
	Source   string `json:"source"`
	Episodes []struct {
		models.Episode
		TimeUntilRelease string `json:"time_until_release"`
	} `json:"episodes"`
}

type calendarResponse struct {
	Days    int                  `json:"days"`
	Buckets []models.CalendarDay `json:"buckets"`
}

type favoritesResponse struct {
	Total int               `json:"total"`
	Items []models.Favorite `json:"items"`
}

func main() {
	global := flag.NewFlagSet("animecal", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "episodes":
		handleEpisodes(ctx, client, *baseURL, sub, args[2:])
	case "favorites":
		handleFavorites(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "watch":
		handleWatch(ctx, client, *baseURL, sub)
	case "tail":
		handleTail(*baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`usage: animecal [-api URL] [-token PATH] <command>

commands:
  auth register <username> <email> <password>
  auth login <email> <password>
  auth logout
  auth me
  episodes list [-q query] [-genre name]
  episodes daily [-q query] [-genre name]
  episodes calendar [-q query] [-genre name]
  episodes genres
  favorites list
  favorites add <anime_id> <title> [image_url]
  favorites remove <anime_id>
  favorites check <anime_id>
  watch <anime_id>
  tail`)
}

// --- auth ---

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, rest []string) {
	switch sub {
	case "register":
		if len(rest) < 3 {
			log.Fatal("usage: auth register <username> <email> <password>")
		}
		body := map[string]string{"username": rest[0], "email": rest[1], "password": rest[2]}
		resp := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", body)
		saveTokenFromResponse(tokenPath, resp)
	case "login":
		if len(rest) < 2 {
			log.Fatal("usage: auth login <email> <password>")
		}
		body := map[string]string{"email": rest[0], "password": rest[1]}
		resp := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", body)
		saveTokenFromResponse(tokenPath, resp)
	case "logout":
		token := mustLoadToken(tokenPath)
		doJSON(ctx, client, http.MethodPost, baseURL+"/auth/logout", token, nil)
		_ = os.Remove(tokenPath)
		fmt.Println("logged out")
	case "me":
		token := mustLoadToken(tokenPath)
		resp := doJSON(ctx, client, http.MethodGet, baseURL+"/users/me", token, nil)
		fmt.Println(string(resp))
	default:
		log.Fatal("usage: auth register|login|logout|me")
	}
}

func saveTokenFromResponse(tokenPath string, body []byte) {
	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil || ar.Token == "" {
		log.Fatalf("no token in response: %s", string(body))
	}
	if err := saveToken(tokenPath, ar.Token); err != nil {
		log.Fatalf("save token: %v", err)
	}
	fmt.Println("authenticated; token saved to", tokenPath)
}

// --- episodes ---

func handleEpisodes(ctx context.Context, client *http.Client, baseURL, sub string, rest []string) {
	fs := flag.NewFlagSet("episodes", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	genre := fs.String("genre", "all", "genre filter")
	_ = fs.Parse(rest)

	params := url.Values{}
	if *query != "" {
		params.Set("q", *query)
	}
	params.Set("genre", *genre)

	switch sub {
	case "", "list":
		body := doJSON(ctx, client, http.MethodGet, baseURL+"/episodes?"+params.Encode(), "", nil)
		printEpisodeList(body)
	case "daily":
		body := doJSON(ctx, client, http.MethodGet, baseURL+"/episodes/daily?"+params.Encode(), "", nil)
		printEpisodeList(body)
	case "calendar":
		body := doJSON(ctx, client, http.MethodGet, baseURL+"/episodes/calendar?"+params.Encode(), "", nil)
		var cal calendarResponse
		if err := json.Unmarshal(body, &cal); err != nil {
			log.Fatalf("decode calendar: %v", err)
		}
		for _, day := range cal.Buckets {
			if len(day.Episodes) == 0 {
				continue
			}
			fmt.Println(day.Date)
			for _, ep := range day.Episodes {
				fmt.Printf("  %s  %s - %s\n", ep.ReleaseTime.Local().Format("15:04"), ep.SeriesTitle, ep.Title)
			}
		}
	case "genres":
		body := doJSON(ctx, client, http.MethodGet, baseURL+"/episodes/genres", "", nil)
		fmt.Println(string(body))
	default:
		log.Fatal("usage: episodes list|daily|calendar|genres")
	}
}

func printEpisodeList(body []byte) {
	var list episodeListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		log.Fatalf("decode episodes: %v", err)
	}
	if list.Total == 0 {
		fmt.Println("no episodes found")
		return
	}
	for _, ep := range list.Episodes {
		fmt.Printf("%-12s  %s - %s (%s)\n", ep.TimeUntilRelease, ep.SeriesTitle, ep.Title, ep.AnimeID)
	}
}

// --- favorites ---

func handleFavorites(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, rest []string) {
	token := mustLoadToken(tokenPath)

	switch sub {
	case "", "list":
		body := doJSON(ctx, client, http.MethodGet, baseURL+"/users/favorites", token, nil)
		var favs favoritesResponse
		if err := json.Unmarshal(body, &favs); err != nil {
			log.Fatalf("decode favorites: %v", err)
		}
		if favs.Total == 0 {
			fmt.Println("no favorites yet")
			return
		}
		for _, f := range favs.Items {
			fmt.Printf("%s  %s (added %s)\n", f.AnimeID, f.AnimeTitle, f.CreatedAt.Local().Format("2006-01-02"))
		}
	case "add":
		if len(rest) < 2 {
			log.Fatal("usage: favorites add <anime_id> <title> [image_url]")
		}
		body := map[string]string{"anime_id": rest[0], "anime_title": rest[1]}
		if len(rest) > 2 {
			body["anime_image"] = rest[2]
		}
		resp := doJSON(ctx, client, http.MethodPost, baseURL+"/users/favorites", token, body)
		fmt.Println(string(resp))
	case "remove":
		if len(rest) < 1 {
			log.Fatal("usage: favorites remove <anime_id>")
		}
		doJSON(ctx, client, http.MethodDelete, baseURL+"/users/favorites/"+url.PathEscape(rest[0]), token, nil)
		fmt.Println("removed")
	case "check":
		if len(rest) < 1 {
			log.Fatal("usage: favorites check <anime_id>")
		}
		resp := doJSON(ctx, client, http.MethodGet, baseURL+"/users/favorites/"+url.PathEscape(rest[0]), token, nil)
		fmt.Println(string(resp))
	default:
		log.Fatal("usage: favorites list|add|remove|check")
	}
}

// --- watch ---

func handleWatch(ctx context.Context, client *http.Client, baseURL, animeID string) {
	if animeID == "" {
		log.Fatal("usage: watch <anime_id>")
	}
	body := doJSON(ctx, client, http.MethodGet, baseURL+"/episodes", "", nil)
	var list episodeListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		log.Fatalf("decode episodes: %v", err)
	}
	for _, ep := range list.Episodes {
		if ep.AnimeID == animeID {
			fmt.Println(ep.WatchURL)
			return
		}
	}
	log.Fatalf("anime %s not in the current schedule", animeID)
}

// --- tail ---

func handleTail(baseURL string) {
	u, err := url.Parse(baseURL)
	if err != nil {
		log.Fatalf("parse api url: %v", err)
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, u.Host)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("connect %s: %v", wsURL, err)
	}
	defer conn.Close()

	log.Printf("listening for favorite events on %s (ctrl-c to stop)", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		fmt.Print(string(msg))
	}
}

// --- helpers ---

func doJSON(ctx context.Context, client *http.Client, method, u, token string, body any) []byte {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("encode request: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Fatalf("%s %s: %s: %s", method, u, resp.Status, string(respBody))
	}
	return respBody
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".animecal", "token.json")
}

func mustLoadToken(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("not logged in (no token at %s); run: animecal auth login", path)
	}
	var td tokenData
	if err := json.Unmarshal(b, &td); err != nil || td.Token == "" {
		log.Fatalf("invalid token file %s", path)
	}
	return td.Token
}

func saveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(tokenData{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
