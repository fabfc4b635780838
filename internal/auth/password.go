package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	members storage.MemberStore
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(members storage.MemberStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{members: members}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new member account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*models.Member, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	// Check if email already exists
	if existing, err := a.members.GetMemberByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().Unix(),
	}
	if err := a.members.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// Authenticate verifies the email and password, returning the member if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Member, error) {
	member, err := a.members.GetMemberByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return member, nil
}
