package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/weddingplan/internal/invite"
	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

// CreateProject persists a new project, records the creator as a member,
// and assigns a unique invite ID when one is not set.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *models.WeddingProject) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.CreatedAt == 0 {
		project.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if project.InviteID == 0 {
		id, err := pickInviteID(ctx, tx)
		if err != nil {
			return err
		}
		project.InviteID = id
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO projects (id, bride_name, groom_name, wedding_date, total_budget, creator_id, invite_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		project.ID, project.BrideName, project.GroomName, project.WeddingDate, project.TotalBudget, project.CreatorID, project.InviteID, project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	// Creator is always a member.
	_, err = tx.ExecContext(ctx,
		"INSERT INTO project_members (project_id, member_id) VALUES (?, ?)",
		project.ID, project.CreatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	project.MemberIDs = []string{project.CreatorID}
	return nil
}

// pickInviteID draws random invite IDs until one is free. The ID space is
// 22 bits, far beyond any realistic project count, so a handful of tries
// always suffices.
func pickInviteID(ctx context.Context, tx *sql.Tx) (uint32, error) {
	for i := 0; i < 16; i++ {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("failed to draw invite id: %w", err)
		}
		id := binary.BigEndian.Uint32(buf[:]) & invite.MaxEventID
		if id == 0 {
			continue
		}

		var taken bool
		err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM projects WHERE invite_id = ?)", id).Scan(&taken)
		if err != nil {
			return 0, fmt.Errorf("failed to check invite id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return 0, fmt.Errorf("failed to find a free invite id")
}

// GetProject retrieves a project by ID, members included.
func (s *SQLiteStore) GetProject(ctx context.Context, projectID string) (*models.WeddingProject, error) {
	return s.getProjectWhere(ctx, "id = ?", projectID)
}

// GetProjectByOwner retrieves the project created by the given member.
func (s *SQLiteStore) GetProjectByOwner(ctx context.Context, ownerID string) (*models.WeddingProject, error) {
	return s.getProjectWhere(ctx, "creator_id = ?", ownerID)
}

// GetProjectByInviteID resolves a decoded invite code to its project.
func (s *SQLiteStore) GetProjectByInviteID(ctx context.Context, inviteID uint32) (*models.WeddingProject, error) {
	return s.getProjectWhere(ctx, "invite_id = ?", inviteID)
}

func (s *SQLiteStore) getProjectWhere(ctx context.Context, where string, arg any) (*models.WeddingProject, error) {
	project := &models.WeddingProject{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, bride_name, groom_name, wedding_date, total_budget, creator_id, invite_id, created_at FROM projects WHERE "+where,
		arg,
	).Scan(&project.ID, &project.BrideName, &project.GroomName, &project.WeddingDate,
		&project.TotalBudget, &project.CreatorID, &project.InviteID, &project.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project (%s %v): %w", where, arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM project_members WHERE project_id = ? ORDER BY rowid",
		project.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		project.MemberIDs = append(project.MemberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project members: %w", err)
	}
	return project, nil
}

// UpdateProject applies the non-nil fields of upd.
func (s *SQLiteStore) UpdateProject(ctx context.Context, projectID string, upd storage.ProjectUpdate) error {
	set := []string{}
	args := []any{}
	if upd.BrideName != nil {
		set = append(set, "bride_name = ?")
		args = append(args, *upd.BrideName)
	}
	if upd.GroomName != nil {
		set = append(set, "groom_name = ?")
		args = append(args, *upd.GroomName)
	}
	if upd.WeddingDate != nil {
		set = append(set, "wedding_date = ?")
		args = append(args, *upd.WeddingDate)
	}
	if upd.TotalBudget != nil {
		set = append(set, "total_budget = ?")
		args = append(args, *upd.TotalBudget)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, projectID)
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET "+joinSet(set)+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(res, "project "+projectID)
}

// AddMember grants membership; adding an existing member is a no-op.
func (s *SQLiteStore) AddMember(ctx context.Context, projectID, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO project_members (project_id, member_id) VALUES (?, ?)",
		projectID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember revokes membership.
func (s *SQLiteStore) RemoveMember(ctx context.Context, projectID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND member_id = ?",
		projectID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return requireRow(res, "membership "+memberID)
}
