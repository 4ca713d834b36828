package decks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a deck by id. Metadata and audio land in one row, so a deck is
// never persisted half-downloaded.
func (r *SQLiteRepository) Save(ctx context.Context, deck *models.Deck) error {
	metadata, err := json.Marshal(deck.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode deck metadata: %w", err)
	}

	query := `INSERT INTO decks (id, metadata, audio)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET metadata = excluded.metadata,
				audio = excluded.audio
	`
	_, err = r.db.ExecContext(ctx, query, deck.ID, metadata, deck.Audio)
	if err != nil {
		return fmt.Errorf("failed to upsert deck: %w", err)
	}
	return nil
}

// Get returns the stored deck or common.ErrorNotFound when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	var metadata []byte
	deck := &models.Deck{ID: id}

	err := r.db.QueryRowContext(ctx,
		`SELECT metadata, audio FROM decks WHERE id = ?`, id).Scan(&metadata, &deck.Audio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck %s: %w", id, err)
	}

	if err := json.Unmarshal(metadata, &deck.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode deck metadata: %w", err)
	}
	return deck, nil
}

// Delete removes a deck by id. Deleting an absent id is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// ListIDs returns the ids of all stored decks.
func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM decks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck ids: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deck id: %w", err)
		}
		result = append(result, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck ids: %w", err)
	}
	return result, nil
}
