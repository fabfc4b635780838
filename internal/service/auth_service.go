package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/weddingplan/internal/auth"
	"github.com/mmynk/weddingplan/internal/models"
)

// AuthService handles member registration and login, issuing session
// tokens on success.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a member account and returns the member with a fresh
// session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.Member, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" || displayName == "" {
		return nil, "", ErrEmptyField
	}

	member, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(member)
	if err != nil {
		slog.Error("failed to generate token after registration", "member_id", member.ID, "error", err)
		return nil, "", err
	}
	slog.Info("member registered", "member_id", member.ID, "email", member.Email)
	return member, token, nil
}

// Login verifies credentials and returns the member with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Member, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	member, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(member)
	if err != nil {
		slog.Error("failed to generate token on login", "member_id", member.ID, "error", err)
		return nil, "", err
	}
	return member, token, nil
}
