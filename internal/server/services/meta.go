package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linguoapp/linguo/internal/models"
	"github.com/linguoapp/linguo/internal/server/repositories/repomanager"
)

// MetaService exposes the per-user review-metadata replica. The server never
// merges: it stores whatever the client computed, keyed by (user, deck).
// There is no delete operation.
type MetaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMetaService(db *sql.DB, m repomanager.RepositoryManager) *MetaService {
	return &MetaService{db: db, repomanager: m}
}

// List returns the user's full replica keyed by deck id. A user who has never
// synced gets an empty map.
func (s *MetaService) List(ctx context.Context, userID string) (map[string]*models.ReviewMeta, error) {
	repo := s.repomanager.ReviewMeta(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing metadata: %w", err)
	}
	return result, nil
}

// Upsert overwrites one record in the user's replica.
func (s *MetaService) Upsert(ctx context.Context, userID string, meta *models.ReviewMeta) error {
	if meta.DeckID == "" {
		return fmt.Errorf("deck id is required")
	}

	repo := s.repomanager.ReviewMeta(s.db)
	if err := repo.Upsert(ctx, userID, meta); err != nil {
		return fmt.Errorf("error saving metadata: %w", err)
	}
	return nil
}
