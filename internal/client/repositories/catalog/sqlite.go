package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/models"
)

const snapshotKey = "catalog"

// SQLiteRepository stores the catalog snapshot as one JSON value in a
// key/value table.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save overwrites the snapshot with the given entries.
func (r *SQLiteRepository) Save(ctx context.Context, entries []models.CatalogEntry) error {
	value, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, value)
	if err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or nil when none has ever been saved.
func (r *SQLiteRepository) Load(ctx context.Context) ([]models.CatalogEntry, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	var entries []models.CatalogEntry
	if err := json.Unmarshal(value, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}
	return entries, nil
}
