package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
	"github.com/linguoapp/linguo/internal/server/auth"
	smodels "github.com/linguoapp/linguo/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeUsers struct {
	registered map[string]string
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*smodels.User, error) {
	f.registered[username] = password
	return &smodels.User{ID: "user-1", UserName: username}, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (string, error) {
	if f.registered[username] != password {
		return "", common.ErrorUnauthorized
	}
	return auth.GenerateToken("user-1", []byte(testSecret), time.Hour)
}

type fakeMeta struct {
	store map[string]map[string]*models.ReviewMeta
}

func (f *fakeMeta) List(ctx context.Context, userID string) (map[string]*models.ReviewMeta, error) {
	result := f.store[userID]
	if result == nil {
		result = map[string]*models.ReviewMeta{}
	}
	return result, nil
}

func (f *fakeMeta) Upsert(ctx context.Context, userID string, meta *models.ReviewMeta) error {
	if f.store[userID] == nil {
		f.store[userID] = map[string]*models.ReviewMeta{}
	}
	f.store[userID][meta.DeckID] = meta
	return nil
}

type fakeContent struct {
	entries []models.CatalogEntry
	payload *models.DeckPayload

	published []*smodels.DeckRecord
}

func (f *fakeContent) Catalog(ctx context.Context, baseURL string) ([]models.CatalogEntry, error) {
	return f.entries, nil
}

func (f *fakeContent) DeckPayload(ctx context.Context, id string) (*models.DeckPayload, error) {
	if f.payload == nil || f.payload.ID != id {
		return nil, common.ErrorNotFound
	}
	return f.payload, nil
}

func (f *fakeContent) GetPresignedUploadURL(ctx context.Context) (string, string, error) {
	return "audio/k1", "https://signed.example/put/audio/k1", nil
}

func (f *fakeContent) PublishDeck(ctx context.Context, rec *smodels.DeckRecord) error {
	f.published = append(f.published, rec)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeMeta, *fakeContent) {
	t.Helper()

	users := &fakeUsers{registered: map[string]string{"alice": "secret"}}
	meta := &fakeMeta{store: map[string]map[string]*models.ReviewMeta{}}
	content := &fakeContent{}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewHandlers(users, meta, content, logger)
	ts := httptest.NewServer(NewRouter(h, []byte(testSecret)))
	t.Cleanup(ts.Close)

	return ts, meta, content
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"username": "alice", "password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	require.NotEmpty(t, lr.Token)
	return lr.Token
}

func TestLogin_WrongPassword(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_RequiresCredentials(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"username": "bob", "password": "pw",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestMeta_RequiresAuth(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/meta", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/meta", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeta_RoundTrip(t *testing.T) {
	ts, _, _ := newTestServer(t)
	token := login(t, ts)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := &models.ReviewMeta{ViewCount: 3, ViewCountUpdated: &now}

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/meta/d1", token, meta)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/meta", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]*models.ReviewMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Contains(t, got, "d1")
	assert.Equal(t, int64(3), got["d1"].ViewCount, "path deck id must win")
}

func TestCatalog_Public(t *testing.T) {
	ts, _, content := newTestServer(t)
	content.entries = []models.CatalogEntry{{ID: "d1", DeckName: "Greetings"}}

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/catalog", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.CatalogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestDeck_NotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/decks/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishDeck(t *testing.T) {
	ts, _, content := newTestServer(t)
	token := login(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks", token, map[string]any{
		"id": "d1", "deck_name": "Greetings", "payload": map[string]any{}, "audio_key": "audio/k1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, content.published, 1)
	assert.Equal(t, "d1", content.published[0].ID)
}

func TestUploadURL_RequiresAuth(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/decks/upload-url", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, ts)
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/decks/upload-url", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "audio/k1", got.Key)
}
