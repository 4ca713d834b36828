// Package httpapi exposes the sync server's JSON HTTP API: account
// registration and login, the per-user review-metadata replica, and the
// published deck catalog.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/logging"
	"github.com/linguoapp/linguo/internal/models"
	smodels "github.com/linguoapp/linguo/internal/server/models"
)

// UserService is the authentication surface the handlers need.
type UserService interface {
	Register(ctx context.Context, username, password string) (*smodels.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// MetaService is the review-metadata surface the handlers need.
type MetaService interface {
	List(ctx context.Context, userID string) (map[string]*models.ReviewMeta, error)
	Upsert(ctx context.Context, userID string, meta *models.ReviewMeta) error
}

// ContentService is the deck catalog surface the handlers need.
type ContentService interface {
	Catalog(ctx context.Context, baseURL string) ([]models.CatalogEntry, error)
	DeckPayload(ctx context.Context, id string) (*models.DeckPayload, error)
	GetPresignedUploadURL(ctx context.Context) (string, string, error)
	PublishDeck(ctx context.Context, rec *smodels.DeckRecord) error
}

// Handlers bundles the HTTP handlers with their service dependencies.
type Handlers struct {
	users   UserService
	meta    MetaService
	content ContentService
	logger  logging.Logger
}

func NewHandlers(users UserService, meta MetaService, content ContentService, logger logging.Logger) *Handlers {
	return &Handlers{users: users, meta: meta, content: content, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		h.logger.Warn(r.Context(), "registration failed", "user", req.Username, "error", err.Error())
		http.Error(w, "registration failed", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// ListMeta returns the authenticated user's full replica keyed by deck id.
func (h *Handlers) ListMeta(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	result, err := h.meta.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// UpsertMeta overwrites one record in the authenticated user's replica. The
// deck id in the path wins over any id in the body.
func (h *Handlers) UpsertMeta(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	meta := &models.ReviewMeta{}
	if err := json.NewDecoder(r.Body).Decode(meta); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	meta.DeckID = chi.URLParam(r, "deckID")

	if err := h.meta.Upsert(r.Context(), userID, meta); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Catalog lists every published deck with presigned audio URLs.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.content.Catalog(r.Context(), baseURL(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
}

// Deck returns one full deck document.
func (h *Handlers) Deck(w http.ResponseWriter, r *http.Request) {
	payload, err := h.content.DeckPayload(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, payload)
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadURL mints a presigned PUT URL for narration audio.
func (h *Handlers) UploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.content.GetPresignedUploadURL(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

type publishDeckRequest struct {
	ID             string          `json:"id"`
	DeckName       string          `json:"deck_name"`
	Group          string          `json:"group"`
	TotalSentences int64           `json:"total_sentences"`
	TotalDuration  float64         `json:"total_duration"`
	Payload        json.RawMessage `json:"payload"`
	AudioKey       string          `json:"audio_key"`
}

// PublishDeck inserts or replaces one published deck.
func (h *Handlers) PublishDeck(w http.ResponseWriter, r *http.Request) {
	var req publishDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec := &smodels.DeckRecord{
		ID:             req.ID,
		DeckName:       req.DeckName,
		DeckGroup:      req.Group,
		TotalSentences: req.TotalSentences,
		TotalDuration:  req.TotalDuration,
		Payload:        req.Payload,
		AudioKey:       req.AudioKey,
	}
	if err := h.content.PublishDeck(r.Context(), rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(context.Background(), "failed to encode response", "error", err.Error())
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// baseURL reconstructs the public address the client dialed, so catalog
// entries can carry absolute deck locators.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
