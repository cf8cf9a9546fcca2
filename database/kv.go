package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// GetValue reads one entry from the durable key-value store. A missing key is
// not an error; the second return value reports whether the key existed.
func GetValue(db *sqlx.DB, key string) (string, bool, error) {
	var value string
	err := db.Get(&value, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read kv entry %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue writes one entry, replacing any previous value for the key.
func SetValue(db *sqlx.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write kv entry %s: %w", key, err)
	}
	return nil
}

// DeleteValue removes an entry. Deleting a missing key is a no-op.
func DeleteValue(db *sqlx.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv entry %s: %w", key, err)
	}
	return nil
}
