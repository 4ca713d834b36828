package reviewmeta

import (
	"context"

	"github.com/linguoapp/linguo/internal/models"
)

// Repository is durable storage for per-deck review metadata. Records are
// only ever created or replaced whole, so a value and its update timestamp
// always land together. There is no delete.
type Repository interface {
	Upsert(ctx context.Context, meta *models.ReviewMeta) error
	Get(ctx context.Context, deckID string) (*models.ReviewMeta, error)
	GetAll(ctx context.Context) (map[string]*models.ReviewMeta, error)
}
