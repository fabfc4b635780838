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

// tasksForPhase loads a phase's tasks with their assignees, in position order.
func (s *SQLiteStore) tasksForPhase(ctx context.Context, phaseID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, phase_id, name, note, completed, position, created_at FROM tasks WHERE phase_id = ? ORDER BY position",
		phaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Note, &t.Completed, &t.Position, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	for i := range tasks {
		assignees, err := s.assigneesForTask(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].AssigneeIDs = assignees
	}
	return tasks, nil
}

func (s *SQLiteStore) assigneesForTask(ctx context.Context, taskID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM task_assignees WHERE task_id = ? ORDER BY rowid",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignees: %w", err)
	}
	return ids, nil
}

// CreateTask appends a task at the end of its phase.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE phase_id = ?",
		task.PhaseID,
	).Scan(&task.Position)
	if err != nil {
		return fmt.Errorf("failed to compute task position: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tasks (id, phase_id, name, note, completed, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.PhaseID, task.Name, task.Note, task.Completed, task.Position, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	for _, assignee := range task.AssigneeIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO task_assignees (task_id, member_id) VALUES (?, ?)",
			task.ID, assignee,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTask retrieves a task with its assignees.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	t := &models.Task{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, phase_id, name, note, completed, position, created_at FROM tasks WHERE id = ?",
		taskID,
	).Scan(&t.ID, &t.PhaseID, &t.Name, &t.Note, &t.Completed, &t.Position, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", taskID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	assignees, err := s.assigneesForTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.AssigneeIDs = assignees
	return t, nil
}

// UpdateTask applies the non-nil fields of upd.
func (s *SQLiteStore) UpdateTask(ctx context.Context, taskID string, upd storage.TaskUpdate) error {
	set := []string{}
	args := []any{}
	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Note != nil {
		set = append(set, "note = ?")
		args = append(args, *upd.Note)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, taskID)
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+joinSet(set)+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, "task "+taskID)
}

// DeleteTask removes the task; assignments cascade.
func (s *SQLiteStore) DeleteTask(ctx context.Context, taskID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res, "task "+taskID)
}

// SetCompleted sets the completion flag and reports whether the stored
// value actually changed. Re-setting the current value is the idempotent
// no-op the sync discipline relies on. The compare and the write are one
// statement, so concurrent toggles can never both report a change.
func (s *SQLiteStore) SetCompleted(ctx context.Context, taskID string, completed bool) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ? WHERE id = ? AND completed <> ?",
		completed, taskID, completed,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set task completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	// No row changed: either the flag already had the desired value or
	// the task does not exist.
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)", taskID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("task %s: %w", taskID, storage.ErrNotFound)
	}
	return false, nil
}

// AddAssignee assigns a member to the task. Idempotent.
func (s *SQLiteStore) AddAssignee(ctx context.Context, taskID, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO task_assignees (task_id, member_id) VALUES (?, ?)",
		taskID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to add assignee: %w", err)
	}
	return nil
}

// RemoveAssignee unassigns a member from the task.
func (s *SQLiteStore) RemoveAssignee(ctx context.Context, taskID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM task_assignees WHERE task_id = ? AND member_id = ?",
		taskID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove assignee: %w", err)
	}
	return requireRow(res, "assignment "+memberID)
}
