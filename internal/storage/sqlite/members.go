package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

// CreateMember persists a new member account.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, display_name, email, avatar_url, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.DisplayName, member.Email, member.AvatarURL, member.PasswordHash, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMemberByEmail retrieves a member by email address.
func (s *SQLiteStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	return s.scanMember(s.db.QueryRowContext(ctx,
		"SELECT id, display_name, email, avatar_url, password_hash, created_at FROM members WHERE email = ?",
		email,
	), "email "+email)
}

// GetMemberByID retrieves a member by ID.
func (s *SQLiteStore) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	return s.scanMember(s.db.QueryRowContext(ctx,
		"SELECT id, display_name, email, avatar_url, password_hash, created_at FROM members WHERE id = ?",
		id,
	), "id "+id)
}

func (s *SQLiteStore) scanMember(row *sql.Row, desc string) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(&member.ID, &member.DisplayName, &member.Email, &member.AvatarURL, &member.PasswordHash, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", desc, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetProfiles returns the directory view for the given member IDs,
// skipping IDs that do not exist.
func (s *SQLiteStore) GetProfiles(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, display_name, email, avatar_url FROM members WHERE id IN ("+placeholders+") ORDER BY display_name",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}
