package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/weddingplan/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	member := &models.Member{ID: "m1", Email: "an@example.com"}
	token, err := manager.Generate(member)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.MemberID != "m1" || claims.Email != "an@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-one", time.Hour)
	other := NewJWTManager("secret-two", time.Hour)

	token, err := manager.Generate(&models.Member{ID: "m1", Email: "x@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute)

	token, err := manager.Generate(&models.Member{ID: "m1", Email: "x@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
