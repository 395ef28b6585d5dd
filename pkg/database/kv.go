package database

import (
	"context"
	"database/sql"
	"fmt"
)

// KV is a namespaced key-value surface over the kv_store table.
// Values are opaque strings; callers own the encoding.
type KV struct {
	DB *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{DB: db}
}

// Get returns the stored value and whether the key exists.
func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	row := kv.DB.QueryRowContext(ctx, `
		SELECT value FROM kv_store WHERE key = ?
	`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	_, err := kv.DB.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	if _, err := kv.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}
