package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

// ListPhases returns the project's phases in position order, tasks and
// assignees embedded, so one call yields the full checklist tree.
func (s *SQLiteStore) ListPhases(ctx context.Context, projectID string) ([]models.Phase, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, project_id, name, start_at, end_at, position, created_at FROM phases WHERE project_id = ? ORDER BY position",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.StartAt, &p.EndAt, &p.Position, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phases: %w", err)
	}

	for i := range phases {
		tasks, err := s.tasksForPhase(ctx, phases[i].ID)
		if err != nil {
			return nil, err
		}
		phases[i].Tasks = tasks
	}
	return phases, nil
}

// CreatePhase appends a phase at the end of the project's sequence.
func (s *SQLiteStore) CreatePhase(ctx context.Context, phase *models.Phase) error {
	if phase.ID == "" {
		phase.ID = uuid.New().String()
	}
	if phase.CreatedAt == 0 {
		phase.CreatedAt = time.Now().Unix()
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM phases WHERE project_id = ?",
		phase.ProjectID,
	).Scan(&phase.Position)
	if err != nil {
		return fmt.Errorf("failed to compute phase position: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO phases (id, project_id, name, start_at, end_at, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		phase.ID, phase.ProjectID, phase.Name, phase.StartAt, phase.EndAt, phase.Position, phase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert phase: %w", err)
	}
	return nil
}

// GetPhase retrieves a single phase with its tasks.
func (s *SQLiteStore) GetPhase(ctx context.Context, phaseID string) (*models.Phase, error) {
	p := &models.Phase{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, start_at, end_at, position, created_at FROM phases WHERE id = ?",
		phaseID,
	).Scan(&p.ID, &p.ProjectID, &p.Name, &p.StartAt, &p.EndAt, &p.Position, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("phase %s: %w", phaseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}

	tasks, err := s.tasksForPhase(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks
	return p, nil
}

// UpdatePhase replaces the phase's name and boundary instants.
func (s *SQLiteStore) UpdatePhase(ctx context.Context, phaseID, name string, startAt, endAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE phases SET name = ?, start_at = ?, end_at = ? WHERE id = ?",
		name, startAt, endAt, phaseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update phase: %w", err)
	}
	return requireRow(res, "phase "+phaseID)
}

// DeletePhase removes the phase; tasks and assignments cascade.
func (s *SQLiteStore) DeletePhase(ctx context.Context, phaseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM phases WHERE id = ?", phaseID)
	if err != nil {
		return fmt.Errorf("failed to delete phase: %w", err)
	}
	return requireRow(res, "phase "+phaseID)
}

// ListPhasesEndingBetween returns all phases with end_at in [from, to),
// tasks embedded, ordered by deadline.
func (s *SQLiteStore) ListPhasesEndingBetween(ctx context.Context, from, to int64) ([]models.Phase, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, project_id, name, start_at, end_at, position, created_at FROM phases WHERE end_at >= ? AND end_at < ? ORDER BY end_at",
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases by deadline: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.StartAt, &p.EndAt, &p.Position, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phases: %w", err)
	}

	for i := range phases {
		tasks, err := s.tasksForPhase(ctx, phases[i].ID)
		if err != nil {
			return nil, err
		}
		phases[i].Tasks = tasks
	}
	return phases, nil
}

// SeedPhasesIfEmpty inserts the given phases only when the project has
// none yet. The check and the inserts share one transaction so a concurrent
// double-seed cannot interleave.
func (s *SQLiteStore) SeedPhasesIfEmpty(ctx context.Context, projectID string, phases []models.Phase) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM phases WHERE project_id = ?", projectID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count phases: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().Unix()
	for pos := range phases {
		phase := &phases[pos]
		phase.ProjectID = projectID
		phase.Position = pos
		if phase.ID == "" {
			phase.ID = uuid.New().String()
		}
		if phase.CreatedAt == 0 {
			phase.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO phases (id, project_id, name, start_at, end_at, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			phase.ID, phase.ProjectID, phase.Name, phase.StartAt, phase.EndAt, phase.Position, phase.CreatedAt,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert seeded phase: %w", err)
		}

		for tpos := range phase.Tasks {
			task := &phase.Tasks[tpos]
			task.PhaseID = phase.ID
			task.Position = tpos
			if task.ID == "" {
				task.ID = uuid.New().String()
			}
			if task.CreatedAt == 0 {
				task.CreatedAt = now
			}

			_, err = tx.ExecContext(ctx,
				"INSERT INTO tasks (id, phase_id, name, note, completed, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
				task.ID, task.PhaseID, task.Name, task.Note, task.Completed, task.Position, task.CreatedAt,
			)
			if err != nil {
				return false, fmt.Errorf("failed to insert seeded task: %w", err)
			}

			for _, assignee := range task.AssigneeIDs {
				_, err = tx.ExecContext(ctx,
					"INSERT OR IGNORE INTO task_assignees (task_id, member_id) VALUES (?, ?)",
					task.ID, assignee,
				)
				if err != nil {
					return false, fmt.Errorf("failed to insert seeded assignee: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}
