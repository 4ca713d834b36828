package decks

import (
	"context"

	"github.com/linguoapp/linguo/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.DeckRecord, error)
	Get(ctx context.Context, id string) (*models.DeckRecord, error)
	Upsert(ctx context.Context, rec *models.DeckRecord) error
}
