package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Cache holds the last good current-season snapshot in sqlite so the
// server can fall back to it when a live fetch fails. The cache stores
// catalog records, not derived episodes: release times are synthesized
// fresh on every load and must never be persisted.
type Cache struct {
	DB *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{DB: db}
}

// SaveSeason replaces the snapshot with the given records, preserving
// their order.
func (c *Cache) SaveSeason(ctx context.Context, items []Anime) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_cache`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_cache
			(mal_id, title, title_english, image_url, synopsis, status, airing, score, genres, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(mal_id) DO UPDATE SET
			title = excluded.title,
			title_english = excluded.title_english,
			image_url = excluded.image_url,
			synopsis = excluded.synopsis,
			status = excluded.status,
			airing = excluded.airing,
			score = excluded.score,
			genres = excluded.genres,
			position = excluded.position,
			fetched_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, a := range items {
		if a.MalID == 0 {
			continue
		}

		names := make([]string, 0, len(a.Genres))
		for _, g := range a.Genres {
			names = append(names, g.Name)
		}
		genresJSON, err := json.Marshal(names)
		if err != nil {
			return fmt.Errorf("marshal genres for %d: %w", a.MalID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			a.MalID,
			a.Title,
			a.TitleEnglish,
			a.Images.JPG.LargeImageURL,
			a.Synopsis,
			a.Status,
			boolToInt(a.Airing),
			a.Score,
			string(genresJSON),
			i,
		); err != nil {
			return fmt.Errorf("upsert %d: %w", a.MalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSeason returns the snapshot in saved order; empty when no
// snapshot exists.
func (c *Cache) LoadSeason(ctx context.Context) ([]Anime, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT mal_id, title, title_english, image_url, synopsis, status, airing, score, genres
		FROM catalog_cache
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load season: %w", err)
	}
	defer rows.Close()

	var out []Anime
	for rows.Next() {
		var (
			a            Anime
			titleEnglish sql.NullString
			imageURL     sql.NullString
			synopsis     sql.NullString
			status       sql.NullString
			airing       int
			score        sql.NullFloat64
			genresJSON   sql.NullString
		)
		if err := rows.Scan(
			&a.MalID, &a.Title, &titleEnglish, &imageURL, &synopsis, &status, &airing, &score, &genresJSON,
		); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}

		a.TitleEnglish = titleEnglish.String
		a.Images.JPG.LargeImageURL = imageURL.String
		a.Images.JPG.ImageURL = imageURL.String
		a.Synopsis = synopsis.String
		a.Status = status.String
		a.Airing = airing != 0
		a.Score = score.Float64

		var names []string
		if genresJSON.Valid {
			_ = json.Unmarshal([]byte(genresJSON.String), &names)
		}
		a.Genres = make([]Genre, 0, len(names))
		for _, n := range names {
			a.Genres = append(a.Genres, Genre{Name: n})
		}

		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
