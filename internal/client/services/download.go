package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linguoapp/linguo/internal/client/repositories/decks"
	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
	"github.com/linguoapp/linguo/internal/netx"
)

// DeckService materializes catalog entries into offline-playable decks and
// manages the stored set.
type DeckService struct {
	client *http.Client
	repo   decks.Repository
	logger logging.Logger
}

func NewDeckService(client *http.Client, repo decks.Repository, logger logging.Logger) *DeckService {
	if client == nil {
		client = &http.Client{}
	}
	return &DeckService{client: client, repo: repo, logger: logger}
}

// Download fetches a deck's full payload and audio and persists both as one
// record. A failed payload fetch degrades to the summary entry (playback with
// an empty sentence list is accepted); a failed or empty audio fetch is an
// error and nothing is persisted.
func (s *DeckService) Download(ctx context.Context, entry models.CatalogEntry) (*models.Deck, error) {
	payload := s.resolvePayload(ctx, entry)

	if payload.AudioURL == "" {
		return nil, fmt.Errorf("deck %s has no audio url: %w", entry.ID, common.ErrorInvalidEntry)
	}

	audio, err := netx.GetBytes(ctx, s.client, payload.AudioURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio for %s: %w", entry.ID, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("deck %s: %w", entry.ID, common.ErrEmptyAudio)
	}

	deck := &models.Deck{ID: payload.ID, Metadata: payload, Audio: audio}
	if err := s.repo.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to persist deck %s: %w", entry.ID, err)
	}
	return deck, nil
}

// resolvePayload fetches the full deck document when the entry carries a
// locator, degrading to the summary on failure.
func (s *DeckService) resolvePayload(ctx context.Context, entry models.CatalogEntry) models.DeckPayload {
	if entry.DeckURL == "" {
		return models.PayloadFromEntry(entry)
	}

	var payload models.DeckPayload
	if err := netx.GetJSON(ctx, s.client, entry.DeckURL, &payload); err != nil {
		s.logger.Warn(ctx, "deck payload fetch failed, using summary", "deck_id", entry.ID, "error", err.Error())
		return models.PayloadFromEntry(entry)
	}
	if payload.ID == "" {
		payload.ID = entry.ID
	}
	if payload.AudioURL == "" {
		payload.AudioURL = entry.AudioURL
	}
	return payload
}

// Get returns a stored deck or common.ErrorNotFound.
func (s *DeckService) Get(ctx context.Context, id string) (*models.Deck, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes a stored deck; absent ids are not an error.
func (s *DeckService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DownloadedIDs returns the set of stored deck ids. The read path degrades:
// any storage failure yields an empty set rather than an error.
func (s *DeckService) DownloadedIDs(ctx context.Context) map[string]struct{} {
	result := make(map[string]struct{})

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to list downloaded decks", "error", err.Error())
		return result
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result
}
