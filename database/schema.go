package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitDatabase applies the schema. Safe to run on every startup.
func InitDatabase(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
