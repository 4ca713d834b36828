package decks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/dbx"
	"github.com/linguoapp/linguo/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const deckColumns = `id, deck_name, deck_group, total_sentences, total_duration, payload, audio_key`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.DeckRecord, error) {
	query := `SELECT ` + deckColumns + ` FROM decks ORDER BY deck_group, deck_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DeckRecord
	for rows.Next() {
		rec := &models.DeckRecord{}
		if err := rows.Scan(&rec.ID, &rec.DeckName, &rec.DeckGroup,
			&rec.TotalSentences, &rec.TotalDuration, &rec.Payload, &rec.AudioKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.DeckRecord) error {
	query :=
		`INSERT INTO decks (id, deck_name, deck_group, total_sentences, total_duration, payload, audio_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   deck_name = EXCLUDED.deck_name,
		   deck_group = EXCLUDED.deck_group,
		   total_sentences = EXCLUDED.total_sentences,
		   total_duration = EXCLUDED.total_duration,
		   payload = EXCLUDED.payload,
		   audio_key = EXCLUDED.audio_key,
		   updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.DeckName, rec.DeckGroup,
		rec.TotalSentences, rec.TotalDuration, rec.Payload, rec.AudioKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.DeckRecord, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`

	rec := &models.DeckRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.DeckName, &rec.DeckGroup,
		&rec.TotalSentences, &rec.TotalDuration, &rec.Payload, &rec.AudioKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
