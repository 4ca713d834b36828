package decks

import (
	"context"

	"github.com/linguoapp/linguo/internal/models"
)

// Repository is durable storage for downloaded decks. A deck row exists if
// and only if a download for that id completed: metadata and audio are
// written together in a single statement.
type Repository interface {
	Save(ctx context.Context, deck *models.Deck) error
	Get(ctx context.Context, id string) (*models.Deck, error)
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}
