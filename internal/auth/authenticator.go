package auth

import (
	"context"

	"github.com/mmynk/weddingplan/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new member account with the given email and credential.
	// The credential format depends on the implementation.
	// Returns the created member or an error if registration fails.
	Register(ctx context.Context, email, displayName, credential string) (*models.Member, error)

	// Authenticate verifies the member's credentials and returns the member
	// if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Member, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements. For passwords: check length, complexity, etc.
	ValidateCredential(credential string) error
}
