package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/linguoapp/linguo/internal/client/storage"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupRepos(t *testing.T) *storage.Repositories {
	t.Helper()
	repos, db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos
}

// fakeAPI is an in-memory stand-in for the sync server.
type fakeAPI struct {
	remote map[string]*models.ReviewMeta

	fetchErr  error
	upsertErr error
	loginErr  error

	fetchCalls  int
	upsertCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{remote: make(map[string]*models.ReviewMeta)}
}

func (f *fakeAPI) Register(ctx context.Context, username, password string) error {
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "test-token", nil
}

func (f *fakeAPI) FetchMeta(ctx context.Context, token string) (map[string]*models.ReviewMeta, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make(map[string]*models.ReviewMeta, len(f.remote))
	for id, m := range f.remote {
		out[id] = m.Clone()
	}
	return out, nil
}

func (f *fakeAPI) UpsertMeta(ctx context.Context, token string, meta *models.ReviewMeta) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.remote[meta.DeckID] = meta.Clone()
	return nil
}
