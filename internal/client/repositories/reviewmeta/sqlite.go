package reviewmeta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Timestamps are stored as RFC 3339 UTC strings in TEXT columns.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces the full record for meta.DeckID.
func (r *SQLiteRepository) Upsert(ctx context.Context, meta *models.ReviewMeta) error {
	query := `INSERT INTO review_metadata
			(deck_id, view_count, view_count_updated, postponed_until, postponed_until_updated, last_viewed)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(deck_id) DO UPDATE SET
				view_count = excluded.view_count,
				view_count_updated = excluded.view_count_updated,
				postponed_until = excluded.postponed_until,
				postponed_until_updated = excluded.postponed_until_updated,
				last_viewed = excluded.last_viewed
	`
	_, err := r.db.ExecContext(ctx, query,
		meta.DeckID, meta.ViewCount,
		encodeTime(meta.ViewCountUpdated),
		encodeTime(meta.PostponedUntil),
		encodeTime(meta.PostponedUntilUpdated),
		encodeTime(meta.LastViewed))
	if err != nil {
		return fmt.Errorf("failed to upsert review metadata for %s: %w", meta.DeckID, err)
	}
	return nil
}

// Get returns the persisted record or common.ErrorNotFound when absent.
// Synthesizing a default for absent ids is the service layer's job.
func (r *SQLiteRepository) Get(ctx context.Context, deckID string) (*models.ReviewMeta, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT deck_id, view_count, view_count_updated, postponed_until, postponed_until_updated, last_viewed
		FROM review_metadata WHERE deck_id = ?`, deckID)

	meta, err := scanMeta(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review metadata for %s: %w", deckID, err)
	}
	return meta, nil
}

// GetAll returns every persisted record keyed by deck id.
func (r *SQLiteRepository) GetAll(ctx context.Context) (map[string]*models.ReviewMeta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deck_id, view_count, view_count_updated, postponed_until, postponed_until_updated, last_viewed
		FROM review_metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list review metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*models.ReviewMeta)
	for rows.Next() {
		meta, err := scanMeta(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review metadata row: %w", err)
		}
		result[meta.DeckID] = meta
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review metadata rows: %w", err)
	}
	return result, nil
}

func scanMeta(scan func(dest ...any) error) (*models.ReviewMeta, error) {
	var meta models.ReviewMeta
	var vcu, pu, puu, lv sql.NullString

	if err := scan(&meta.DeckID, &meta.ViewCount, &vcu, &pu, &puu, &lv); err != nil {
		return nil, err
	}

	var err error
	if meta.ViewCountUpdated, err = decodeTime(vcu); err != nil {
		return nil, err
	}
	if meta.PostponedUntil, err = decodeTime(pu); err != nil {
		return nil, err
	}
	if meta.PostponedUntilUpdated, err = decodeTime(puu); err != nil {
		return nil, err
	}
	if meta.LastViewed, err = decodeTime(lv); err != nil {
		return nil, err
	}
	return &meta, nil
}

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored timestamp %q: %w", s.String, err)
	}
	t = t.UTC()
	return &t, nil
}
