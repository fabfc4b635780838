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

// ListGroups returns the project's budget groups in position order with
// their activities embedded.
func (s *SQLiteStore) ListGroups(ctx context.Context, projectID string) ([]models.BudgetGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, project_id, name, position, created_at FROM budget_groups WHERE project_id = ? ORDER BY position",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget groups: %w", err)
	}
	defer rows.Close()

	var groups []models.BudgetGroup
	for rows.Next() {
		var g models.BudgetGroup
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Name, &g.Position, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget groups: %w", err)
	}

	for i := range groups {
		activities, err := s.activitiesForGroup(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Activities = activities
	}
	return groups, nil
}

func (s *SQLiteStore) activitiesForGroup(ctx context.Context, groupID string) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, name, note, expected_budget, actual_budget, payer, position, created_at FROM activities WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.GroupID, &a.Name, &a.Note, &a.ExpectedBudget, &a.ActualBudget, &a.Payer, &a.Position, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// CreateGroup appends a budget group at the end of the project's sequence.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.BudgetGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM budget_groups WHERE project_id = ?",
		group.ProjectID,
	).Scan(&group.Position)
	if err != nil {
		return fmt.Errorf("failed to compute group position: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO budget_groups (id, project_id, name, position, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.ProjectID, group.Name, group.Position, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget group: %w", err)
	}
	return nil
}

// GetGroup retrieves a single budget group with its activities.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.BudgetGroup, error) {
	g := &models.BudgetGroup{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, position, created_at FROM budget_groups WHERE id = ?",
		groupID,
	).Scan(&g.ID, &g.ProjectID, &g.Name, &g.Position, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget group: %w", err)
	}

	activities, err := s.activitiesForGroup(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Activities = activities
	return g, nil
}

// UpdateGroup renames the budget group.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, groupID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE budget_groups SET name = ? WHERE id = ?",
		name, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget group: %w", err)
	}
	return requireRow(res, "budget group "+groupID)
}

// DeleteGroup removes the group; activities cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budget_groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete budget group: %w", err)
	}
	return requireRow(res, "budget group "+groupID)
}

// SeedGroupsIfEmpty inserts the given groups (activities included) only
// when the project has none yet, in one transaction like the phase seed.
func (s *SQLiteStore) SeedGroupsIfEmpty(ctx context.Context, projectID string, groups []models.BudgetGroup) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM budget_groups WHERE project_id = ?", projectID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count budget groups: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().Unix()
	for pos := range groups {
		group := &groups[pos]
		group.ProjectID = projectID
		group.Position = pos
		if group.ID == "" {
			group.ID = uuid.New().String()
		}
		if group.CreatedAt == 0 {
			group.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO budget_groups (id, project_id, name, position, created_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, group.ProjectID, group.Name, group.Position, group.CreatedAt,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert seeded group: %w", err)
		}

		for apos := range group.Activities {
			activity := &group.Activities[apos]
			activity.GroupID = group.ID
			activity.Position = apos
			if activity.ID == "" {
				activity.ID = uuid.New().String()
			}
			if activity.CreatedAt == 0 {
				activity.CreatedAt = now
			}

			_, err = tx.ExecContext(ctx,
				"INSERT INTO activities (id, group_id, name, note, expected_budget, actual_budget, payer, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
				activity.ID, activity.GroupID, activity.Name, activity.Note, activity.ExpectedBudget, activity.ActualBudget, string(activity.Payer), activity.Position, activity.CreatedAt,
			)
			if err != nil {
				return false, fmt.Errorf("failed to insert seeded activity: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// CreateActivity appends an activity at the end of its group.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt == 0 {
		activity.CreatedAt = time.Now().Unix()
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM activities WHERE group_id = ?",
		activity.GroupID,
	).Scan(&activity.Position)
	if err != nil {
		return fmt.Errorf("failed to compute activity position: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO activities (id, group_id, name, note, expected_budget, actual_budget, payer, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		activity.ID, activity.GroupID, activity.Name, activity.Note, activity.ExpectedBudget, activity.ActualBudget, string(activity.Payer), activity.Position, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// GetActivity retrieves a single activity.
func (s *SQLiteStore) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	a := &models.Activity{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, name, note, expected_budget, actual_budget, payer, position, created_at FROM activities WHERE id = ?",
		activityID,
	).Scan(&a.ID, &a.GroupID, &a.Name, &a.Note, &a.ExpectedBudget, &a.ActualBudget, &a.Payer, &a.Position, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity %s: %w", activityID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// UpdateActivity applies the non-nil fields of upd.
func (s *SQLiteStore) UpdateActivity(ctx context.Context, activityID string, upd storage.ActivityUpdate) error {
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
	if upd.ExpectedBudget != nil {
		set = append(set, "expected_budget = ?")
		args = append(args, *upd.ExpectedBudget)
	}
	if upd.ActualBudget != nil {
		set = append(set, "actual_budget = ?")
		args = append(args, *upd.ActualBudget)
	}
	if upd.Payer != nil {
		set = append(set, "payer = ?")
		args = append(args, string(*upd.Payer))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, activityID)
	res, err := s.db.ExecContext(ctx,
		"UPDATE activities SET "+joinSet(set)+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return requireRow(res, "activity "+activityID)
}

// DeleteActivity removes the activity.
func (s *SQLiteStore) DeleteActivity(ctx context.Context, activityID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireRow(res, "activity "+activityID)
}
