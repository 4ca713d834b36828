package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/linguoapp/linguo/internal/client/api"
	"github.com/linguoapp/linguo/internal/client/repositories/reviewmeta"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
)

// Session carries the authenticated user's access credential. It is passed
// explicitly to the sync engine; there is no process-wide auth state.
type Session struct {
	UserName string
	Token    string
}

// SyncService reconciles the local review-metadata set against the remote
// replica with field-level last-writer-wins merging.
type SyncService struct {
	api    api.Client
	repo   reviewmeta.Repository
	logger logging.Logger
}

func NewSyncService(api api.Client, repo reviewmeta.Repository, logger logging.Logger) *SyncService {
	return &SyncService{api: api, repo: repo, logger: logger}
}

// Sync runs one reconciliation pass and returns the merged mapping.
//
// Without a session it is a no-op returning the local set unchanged. Any
// remote read or write failure aborts the pass before local data is touched;
// the merge is recomputed from fresh snapshots on the next attempt, so a
// failed sync is retried from scratch, never resumed.
func (s *SyncService) Sync(ctx context.Context, sess *Session) (map[string]*models.ReviewMeta, error) {
	local, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local metadata: %w", err)
	}

	if sess == nil || sess.Token == "" {
		return local, nil
	}

	remote, err := s.api.FetchMeta(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote replica: %w", err)
	}

	merged := make(map[string]*models.ReviewMeta, len(local)+len(remote))
	for _, id := range unionIDs(local, remote) {
		merged[id] = mergeMeta(local[id], remote[id])
	}

	for _, id := range sortedIDs(merged) {
		if err := s.api.UpsertMeta(ctx, sess.Token, merged[id]); err != nil {
			return nil, fmt.Errorf("failed to write remote replica: %w", err)
		}
	}

	for _, id := range sortedIDs(merged) {
		if err := s.repo.Upsert(ctx, merged[id]); err != nil {
			return nil, fmt.Errorf("failed to write local metadata: %w", err)
		}
	}

	s.logger.Info(ctx, "sync completed", "decks", len(merged))
	return merged, nil
}

// mergeMeta merges two replicas of one deck's record, independently per field:
//
//   - view_count: max of the two (a completion count must never be lost, even
//     when clocks disagree); its updated timestamp is the later of the two,
//     regardless of which side's count won.
//   - postponed_until and its updated timestamp travel as a pair from the side
//     whose timestamp is strictly greater; ties go to local.
//   - last_viewed: the later of the two.
//
// Either side may be nil, meaning the deck exists only on the other replica.
func mergeMeta(local, remote *models.ReviewMeta) *models.ReviewMeta {
	if local == nil {
		return remote.Clone()
	}
	if remote == nil {
		return local.Clone()
	}

	merged := local.Clone()

	if remote.ViewCount > merged.ViewCount {
		merged.ViewCount = remote.ViewCount
	}
	merged.ViewCountUpdated = models.LaterTime(local.ViewCountUpdated, remote.ViewCountUpdated)

	if models.TimeAfter(remote.PostponedUntilUpdated, local.PostponedUntilUpdated) {
		r := remote.Clone()
		merged.PostponedUntil = r.PostponedUntil
		merged.PostponedUntilUpdated = r.PostponedUntilUpdated
	}

	merged.LastViewed = models.LaterTime(local.LastViewed, remote.LastViewed)

	return merged
}

func unionIDs(local, remote map[string]*models.ReviewMeta) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for id := range local {
		seen[id] = struct{}{}
	}
	for id := range remote {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedIDs(m map[string]*models.ReviewMeta) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
