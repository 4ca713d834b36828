package services

import (
	"context"
	"fmt"

	"github.com/linguoapp/linguo/internal/client/api"
)

// AuthService handles account registration and login against the sync server.
type AuthService struct {
	api api.Client
}

func NewAuthService(api api.Client) *AuthService {
	return &AuthService{api: api}
}

// Register creates a new account. The user still needs to log in afterwards.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if err := s.api.Register(ctx, username, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Login verifies credentials and returns a session for the sync engine.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &Session{UserName: username, Token: token}, nil
}
