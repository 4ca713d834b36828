package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linguoapp/linguo/internal/client/repositories/reviewmeta"
	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/models"
)

// ReviewService enforces the pairing invariant on review metadata: a field and
// its update timestamp always change together, in one atomic upsert.
type ReviewService struct {
	repo reviewmeta.Repository
}

func NewReviewService(repo reviewmeta.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Get returns the persisted record, or the zero-value default for ids never
// written. The default is synthesized on read and not persisted.
func (s *ReviewService) Get(ctx context.Context, deckID string) (*models.ReviewMeta, error) {
	meta, err := s.repo.Get(ctx, deckID)
	if errors.Is(err, common.ErrorNotFound) {
		return models.NewReviewMeta(deckID), nil
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// RecordCompletion marks one fully-completed playback session: view count +1,
// last viewed = now, and the next review date computed from choice. All field
// pairs are written in a single upsert with their timestamps set to now.
func (s *ReviewService) RecordCompletion(ctx context.Context, deckID string, choice models.PostponeChoice, now time.Time) (*models.ReviewMeta, error) {
	meta, err := s.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	meta.ViewCount++
	meta.ViewCountUpdated = &now
	meta.PostponedUntil = choice.Until(now)
	meta.PostponedUntilUpdated = &now
	meta.LastViewed = &now

	if err := s.repo.Upsert(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to record completion for %s: %w", deckID, err)
	}
	return meta, nil
}

// Reschedule changes only the postponement pair; view count and last viewed
// stay untouched.
func (s *ReviewService) Reschedule(ctx context.Context, deckID string, choice models.PostponeChoice, now time.Time) (*models.ReviewMeta, error) {
	meta, err := s.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	meta.PostponedUntil = choice.Until(now)
	meta.PostponedUntilUpdated = &now

	if err := s.repo.Upsert(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to reschedule %s: %w", deckID, err)
	}
	return meta, nil
}

// IsDue reports whether a deck's scheduled review date has passed: a non-nil
// postponed_until strictly before now. Unscheduled decks are never "due".
func IsDue(meta *models.ReviewMeta, now time.Time) bool {
	return meta.PostponedUntil != nil && meta.PostponedUntil.Before(now)
}
