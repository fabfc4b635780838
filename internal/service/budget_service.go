package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/planning"
	"github.com/mmynk/weddingplan/internal/storage"
	"github.com/mmynk/weddingplan/internal/template"
)

// BudgetService owns budget groups and activities, the money-side mirror
// of the checklist.
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// ListGroups returns the project's full budget tree.
func (s *BudgetService) ListGroups(ctx context.Context, actorID, projectID string) ([]models.BudgetGroup, error) {
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListGroups(ctx, projectID)
}

// CreateGroup adds a spending category.
func (s *BudgetService) CreateGroup(ctx context.Context, actorID, projectID, name string) (*models.BudgetGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyField
	}
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return nil, err
	}

	group := &models.BudgetGroup{ProjectID: projectID, Name: strings.TrimSpace(name)}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "project_id", projectID, "error", err)
		return nil, err
	}
	return group, nil
}

// UpdateGroup renames a spending category.
func (s *BudgetService) UpdateGroup(ctx context.Context, actorID, groupID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyField
	}
	if _, _, err := s.groupProject(ctx, actorID, groupID); err != nil {
		return err
	}
	return s.store.UpdateGroup(ctx, groupID, strings.TrimSpace(name))
}

// DeleteGroup removes a category and its activities. Creator-only.
func (s *BudgetService) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	_, project, err := s.groupProject(ctx, actorID, groupID)
	if err != nil {
		return err
	}
	if !project.IsCreator(actorID) {
		return ErrNotProjectOwner
	}
	return s.store.DeleteGroup(ctx, groupID)
}

// SeedBudget applies the stock budget template to a project with no
// groups yet. Mirrors SeedTimeline's no-op reporting.
func (s *BudgetService) SeedBudget(ctx context.Context, actorID, projectID string) (bool, error) {
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return false, err
	}

	seeds := template.Budget()
	groups := make([]models.BudgetGroup, 0, len(seeds))
	for _, seed := range seeds {
		group := models.BudgetGroup{Name: seed.Name}
		for _, activity := range seed.Activities {
			group.Activities = append(group.Activities, models.Activity{
				Name:  activity.Name,
				Note:  activity.Note,
				Payer: activity.Payer,
			})
		}
		groups = append(groups, group)
	}

	inserted, err := s.store.SeedGroupsIfEmpty(ctx, projectID, groups)
	if err != nil {
		slog.Error("SeedBudget failed", "project_id", projectID, "error", err)
		return false, err
	}
	if !inserted {
		slog.Info("SeedBudget skipped, project already has groups", "project_id", projectID)
	}
	return inserted, nil
}

// CreateActivityRequest carries the fields for a new budget line item.
type CreateActivityRequest struct {
	Name           string
	Note           string
	ExpectedBudget int64
	ActualBudget   int64
	Payer          models.Payer
}

// CreateActivity adds a line item to a group.
func (s *BudgetService) CreateActivity(ctx context.Context, actorID, groupID string, req CreateActivityRequest) (*models.Activity, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyField
	}
	if req.ExpectedBudget < 0 || req.ActualBudget < 0 {
		return nil, ErrNegativeAmount
	}
	if !req.Payer.Valid() {
		return nil, ErrInvalidPayer
	}
	if _, _, err := s.groupProject(ctx, actorID, groupID); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		GroupID:        groupID,
		Name:           strings.TrimSpace(req.Name),
		Note:           req.Note,
		ExpectedBudget: req.ExpectedBudget,
		ActualBudget:   req.ActualBudget,
		Payer:          req.Payer,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Error("CreateActivity failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return activity, nil
}

// UpdateActivity edits a line item.
func (s *BudgetService) UpdateActivity(ctx context.Context, actorID, activityID string, upd storage.ActivityUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrEmptyField
	}
	if upd.ExpectedBudget != nil && *upd.ExpectedBudget < 0 {
		return ErrNegativeAmount
	}
	if upd.ActualBudget != nil && *upd.ActualBudget < 0 {
		return ErrNegativeAmount
	}
	if upd.Payer != nil && !upd.Payer.Valid() {
		return ErrInvalidPayer
	}
	if _, _, err := s.activityProject(ctx, actorID, activityID); err != nil {
		return err
	}
	return s.store.UpdateActivity(ctx, activityID, upd)
}

// DeleteActivity removes a line item. Any member may delete activities.
func (s *BudgetService) DeleteActivity(ctx context.Context, actorID, activityID string) error {
	if _, _, err := s.activityProject(ctx, actorID, activityID); err != nil {
		return err
	}
	return s.store.DeleteActivity(ctx, activityID)
}

// Summary is the budget roll-up: project totals plus per-group totals
// keyed by group ID. Recomputed from the loaded tree on every call.
type Summary struct {
	Project planning.Totals            `json:"project"`
	ByGroup map[string]planning.Totals `json:"by_group"`
}

// Totals computes the budget summary for a project.
func (s *BudgetService) Totals(ctx context.Context, actorID, projectID string) (Summary, error) {
	groups, err := s.ListGroups(ctx, actorID, projectID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Project: planning.ProjectTotals(groups),
		ByGroup: make(map[string]planning.Totals, len(groups)),
	}
	for _, group := range groups {
		summary.ByGroup[group.ID] = planning.GroupTotals(group)
	}
	return summary, nil
}

// groupProject resolves a group and guards project membership.
func (s *BudgetService) groupProject(ctx context.Context, actorID, groupID string) (*models.BudgetGroup, *models.WeddingProject, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	project, err := memberProject(ctx, s.store, actorID, group.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return group, project, nil
}

// activityProject resolves an activity and guards project membership.
func (s *BudgetService) activityProject(ctx context.Context, actorID, activityID string) (*models.Activity, *models.WeddingProject, error) {
	activity, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		return nil, nil, err
	}
	_, project, err := s.groupProject(ctx, actorID, activity.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return activity, project, nil
}
