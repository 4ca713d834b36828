package reviewmeta

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) (map[string]*models.ReviewMeta, error) {
	query :=
		`SELECT deck_id, view_count, view_count_updated, postponed_until, postponed_until_updated, last_viewed
		 FROM review_metadata
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*models.ReviewMeta)
	for rows.Next() {
		meta := &models.ReviewMeta{}
		var vcUpdated, postponed, postponedUpdated, lastViewed sql.NullTime

		if err := rows.Scan(&meta.DeckID, &meta.ViewCount, &vcUpdated, &postponed, &postponedUpdated, &lastViewed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		meta.ViewCountUpdated = fromNullTime(vcUpdated)
		meta.PostponedUntil = fromNullTime(postponed)
		meta.PostponedUntilUpdated = fromNullTime(postponedUpdated)
		meta.LastViewed = fromNullTime(lastViewed)

		result[meta.DeckID] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, userID string, meta *models.ReviewMeta) error {
	query :=
		`INSERT INTO review_metadata
		   (user_id, deck_id, view_count, view_count_updated, postponed_until, postponed_until_updated, last_viewed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, deck_id) DO UPDATE SET
		   view_count = EXCLUDED.view_count,
		   view_count_updated = EXCLUDED.view_count_updated,
		   postponed_until = EXCLUDED.postponed_until,
		   postponed_until_updated = EXCLUDED.postponed_until_updated,
		   last_viewed = EXCLUDED.last_viewed
		 `

	_, err := r.db.ExecContext(ctx, query, userID, meta.DeckID, meta.ViewCount,
		toNullTime(meta.ViewCountUpdated), toNullTime(meta.PostponedUntil),
		toNullTime(meta.PostponedUntilUpdated), toNullTime(meta.LastViewed))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
