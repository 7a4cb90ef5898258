package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jwillems/mailintake/internal/storage"
)

// KV implements storage.Store on top of the kv_store table. Values are
// JSON-encoded and written whole.
type KV struct {
	db *DB
}

// NewKV creates a key-value store backed by db. The kv_store table is
// created by the database migrations.
func NewKV(db *DB) *KV {
	return &KV{db: db}
}

func (kv *KV) Get(ctx context.Context, key string, out any) error {
	var raw string
	query := `SELECT value FROM kv_store WHERE key = ?`
	err := kv.db.GetContext(ctx, &raw, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoValue
	}
	if err != nil {
		return fmt.Errorf("failed to read value for %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return nil
}

func (kv *KV) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	query := `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := kv.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write value for %q: %w", key, err)
	}
	return nil
}
