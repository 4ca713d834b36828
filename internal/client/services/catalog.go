// Package services contains the client-side business logic: catalog loading,
// deck downloads, review scheduling, and cloud synchronization.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linguoapp/linguo/internal/client/repositories/catalog"
	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
	"github.com/linguoapp/linguo/internal/netx"
)

// CatalogService obtains the authoritative deck list: network first, stored
// snapshot as fallback.
type CatalogService struct {
	catalogURL string
	client     *http.Client
	repo       catalog.Repository
	logger     logging.Logger
}

func NewCatalogService(catalogURL string, client *http.Client, repo catalog.Repository, logger logging.Logger) *CatalogService {
	if client == nil {
		client = &http.Client{}
	}
	return &CatalogService{catalogURL: catalogURL, client: client, repo: repo, logger: logger}
}

// Load fetches the catalog with cache-defeating semantics, validates entries
// one by one (a bad entry is dropped, not fatal), persists the result, and
// returns it. On any fetch or parse failure it falls back to the stored
// snapshot; if that is empty too it returns common.ErrNoCatalog, which is
// distinct from a valid empty catalog.
func (s *CatalogService) Load(ctx context.Context) ([]models.CatalogEntry, error) {
	entries, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn(ctx, "catalog fetch failed, falling back to snapshot", "error", err.Error())
		return s.fallback(ctx)
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		// The fetched catalog is still good; a failed snapshot write only
		// hurts the next offline session.
		s.logger.Warn(ctx, "failed to persist catalog snapshot", "error", err.Error())
	}
	return entries, nil
}

func (s *CatalogService) fetch(ctx context.Context) ([]models.CatalogEntry, error) {
	var raw []models.CatalogEntry

	// The endpoint may return either a single entry or a list.
	url := netx.CacheBust(s.catalogURL)
	if err := netx.GetJSON(ctx, s.client, url, &raw); err != nil {
		var single models.CatalogEntry
		if err2 := netx.GetJSON(ctx, s.client, netx.CacheBust(s.catalogURL), &single); err2 != nil {
			return nil, err
		}
		raw = []models.CatalogEntry{single}
	}

	entries := make([]models.CatalogEntry, 0, len(raw))
	for _, e := range raw {
		if !e.Valid() {
			s.logger.Warn(ctx, "dropping invalid catalog entry", "id", e.ID, "name", e.DeckName)
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog contained no usable entries: %w", common.ErrorInvalidEntry)
	}
	return entries, nil
}

func (s *CatalogService) fallback(ctx context.Context) ([]models.CatalogEntry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	if len(entries) == 0 {
		return nil, common.ErrNoCatalog
	}
	return entries, nil
}
