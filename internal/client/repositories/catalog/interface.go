package catalog

import (
	"context"

	"github.com/linguoapp/linguo/internal/models"
)

// Repository is the single-slot store for the last successfully fetched
// catalog. Save overwrites the snapshot wholesale.
type Repository interface {
	Save(ctx context.Context, entries []models.CatalogEntry) error
	Load(ctx context.Context) ([]models.CatalogEntry, error)
}
