// Package api implements the HTTP client for the Linguo sync server: account
// registration and login, and the per-user review-metadata replica.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/models"
)

// Client is the surface the client services need from the sync server.
type Client interface {
	// Register creates a new account.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and returns an access token.
	Login(ctx context.Context, username, password string) (string, error)
	// FetchMeta returns the authenticated user's full remote replica,
	// keyed by deck id. An account that has never synced yields an empty map.
	FetchMeta(ctx context.Context, token string) (map[string]*models.ReviewMeta, error)
	// UpsertMeta writes one record into the remote replica.
	UpsertMeta(ctx context.Context, token string, meta *models.ReviewMeta) error
}

// HTTPClient implements Client over JSON HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a client for the server at baseURL,
// e.g. "http://localhost:8080".
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPClient{baseURL: baseURL, client: client}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/api/register", "", credentialsRequest{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.postJSON(ctx, "/api/login", "", credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) FetchMeta(ctx context.Context, token string) (map[string]*models.ReviewMeta, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/api/meta")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	result := make(map[string]*models.ReviewMeta)
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode remote replica: %w", err)
	}
	return result, nil
}

func (c *HTTPClient) UpsertMeta(ctx context.Context, token string, meta *models.ReviewMeta) error {
	endpoint, err := url.JoinPath(c.baseURL, "/api/meta", meta.DeckID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, in, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	default:
		return fmt.Errorf("server returned %s", resp.Status)
	}
}
