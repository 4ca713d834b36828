package reviewmeta

import (
	"context"

	"github.com/linguoapp/linguo/internal/models"
)

// Repository stores each user's review-metadata replica. There is no delete:
// records only appear and get overwritten.
type Repository interface {
	ListByUser(ctx context.Context, userID string) (map[string]*models.ReviewMeta, error)
	Upsert(ctx context.Context, userID string, meta *models.ReviewMeta) error
}
