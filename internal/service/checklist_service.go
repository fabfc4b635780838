package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/planning"
	"github.com/mmynk/weddingplan/internal/storage"
	"github.com/mmynk/weddingplan/internal/template"
)

// ChecklistService owns phases and tasks: CRUD, template seeding,
// completion toggles, assignments and the progress view.
type ChecklistService struct {
	store storage.Store
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(store storage.Store) *ChecklistService {
	return &ChecklistService{store: store}
}

// ListPhases returns the project's full checklist tree.
func (s *ChecklistService) ListPhases(ctx context.Context, actorID, projectID string) ([]models.Phase, error) {
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListPhases(ctx, projectID)
}

// CreatePhase adds a phase after the existing ones. The new phase must not
// start before the previous phase ends.
func (s *ChecklistService) CreatePhase(ctx context.Context, actorID, projectID, name string, startAt, endAt int64) (*models.Phase, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyField
	}
	if endAt < startAt {
		return nil, ErrEndBeforeStart
	}
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return nil, err
	}

	phases, err := s.store.ListPhases(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if n := len(phases); n > 0 && startAt < phases[n-1].EndAt {
		return nil, ErrPhaseOverlap
	}

	phase := &models.Phase{
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		StartAt:   startAt,
		EndAt:     endAt,
	}
	if err := s.store.CreatePhase(ctx, phase); err != nil {
		slog.Error("CreatePhase failed", "project_id", projectID, "error", err)
		return nil, err
	}
	return phase, nil
}

// UpdatePhase changes a phase's name and boundaries.
func (s *ChecklistService) UpdatePhase(ctx context.Context, actorID, phaseID, name string, startAt, endAt int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyField
	}
	if endAt < startAt {
		return ErrEndBeforeStart
	}
	if _, _, err := s.phaseProject(ctx, actorID, phaseID); err != nil {
		return err
	}
	return s.store.UpdatePhase(ctx, phaseID, strings.TrimSpace(name), startAt, endAt)
}

// DeletePhase removes a phase and its tasks. Creator-only.
func (s *ChecklistService) DeletePhase(ctx context.Context, actorID, phaseID string) error {
	_, project, err := s.phaseProject(ctx, actorID, phaseID)
	if err != nil {
		return err
	}
	if !project.IsCreator(actorID) {
		return ErrNotProjectOwner
	}
	return s.store.DeletePhase(ctx, phaseID)
}

// SeedTimeline applies the stock timeline template to an empty project.
// Returns whether anything was inserted: seeding a project that already
// has phases is a reported no-op, never a duplicate checklist.
func (s *ChecklistService) SeedTimeline(ctx context.Context, actorID, projectID string, start time.Time) (bool, error) {
	project, err := memberProject(ctx, s.store, actorID, projectID)
	if err != nil {
		return false, err
	}

	var weddingDate time.Time
	if project.WeddingDate != 0 {
		weddingDate = time.Unix(project.WeddingDate, 0)
	}

	// Template tasks are pre-assigned to the project creator.
	seeds := template.Timeline(start, weddingDate, project.CreatorID)
	phases := make([]models.Phase, 0, len(seeds))
	for _, seed := range seeds {
		phase := models.Phase{
			Name:    seed.Name,
			StartAt: seed.StartAt.Unix(),
			EndAt:   seed.EndAt.Unix(),
		}
		for _, task := range seed.Tasks {
			phase.Tasks = append(phase.Tasks, models.Task{
				Name:        task.Name,
				Note:        task.Note,
				AssigneeIDs: []string{task.AssigneeID},
			})
		}
		phases = append(phases, phase)
	}

	inserted, err := s.store.SeedPhasesIfEmpty(ctx, projectID, phases)
	if err != nil {
		slog.Error("SeedTimeline failed", "project_id", projectID, "error", err)
		return false, err
	}
	if !inserted {
		slog.Info("SeedTimeline skipped, project already has phases", "project_id", projectID)
	}
	return inserted, nil
}

// CreateTaskRequest carries the fields for a new task.
type CreateTaskRequest struct {
	Name        string
	Note        string
	AssigneeIDs []string
}

// CreateTask adds a task to a phase. Assignees must be project members.
func (s *ChecklistService) CreateTask(ctx context.Context, actorID, phaseID string, req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyField
	}
	_, project, err := s.phaseProject(ctx, actorID, phaseID)
	if err != nil {
		return nil, err
	}
	for _, id := range req.AssigneeIDs {
		if !project.HasMember(id) {
			return nil, ErrNotMember
		}
	}

	task := &models.Task{
		PhaseID:     phaseID,
		Name:        strings.TrimSpace(req.Name),
		Note:        req.Note,
		AssigneeIDs: req.AssigneeIDs,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		slog.Error("CreateTask failed", "phase_id", phaseID, "error", err)
		return nil, err
	}
	return task, nil
}

// GetTask returns a single task.
func (s *ChecklistService) GetTask(ctx context.Context, actorID, taskID string) (*models.Task, error) {
	task, _, err := s.taskProject(ctx, actorID, taskID)
	return task, err
}

// UpdateTask edits a task's name and/or note.
func (s *ChecklistService) UpdateTask(ctx context.Context, actorID, taskID string, upd storage.TaskUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrEmptyField
	}
	if _, _, err := s.taskProject(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.store.UpdateTask(ctx, taskID, upd)
}

// DeleteTask removes a task. Any member may delete tasks.
func (s *ChecklistService) DeleteTask(ctx context.Context, actorID, taskID string) error {
	if _, _, err := s.taskProject(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, taskID)
}

// SetTaskCompleted sets the completion flag to the desired value and
// reports whether it changed, so a double toggle surfaces as "nothing
// happened" instead of a phantom update.
func (s *ChecklistService) SetTaskCompleted(ctx context.Context, actorID, taskID string, completed bool) (bool, error) {
	if _, _, err := s.taskProject(ctx, actorID, taskID); err != nil {
		return false, err
	}
	return s.store.SetCompleted(ctx, taskID, completed)
}

// AssignMember assigns a project member to a task.
func (s *ChecklistService) AssignMember(ctx context.Context, actorID, taskID, memberID string) error {
	_, project, err := s.taskProject(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	if !project.HasMember(memberID) {
		return ErrNotMember
	}
	return s.store.AddAssignee(ctx, taskID, memberID)
}

// UnassignMember removes a member from a task.
func (s *ChecklistService) UnassignMember(ctx context.Context, actorID, taskID, memberID string) error {
	if _, _, err := s.taskProject(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.store.RemoveAssignee(ctx, taskID, memberID)
}

// AvailableAssignees returns the profiles of project members not yet
// assigned to the task.
func (s *ChecklistService) AvailableAssignees(ctx context.Context, actorID, taskID string) ([]models.Profile, error) {
	task, project, err := s.taskProject(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	available := planning.AvailableMembers(project.MemberIDs, task.AssigneeIDs)
	return s.store.GetProfiles(ctx, available)
}

// Progress returns the project-wide task completion tally.
func (s *ChecklistService) Progress(ctx context.Context, actorID, projectID string) (planning.Progress, error) {
	if _, err := memberProject(ctx, s.store, actorID, projectID); err != nil {
		return planning.Progress{}, err
	}
	phases, err := s.store.ListPhases(ctx, projectID)
	if err != nil {
		return planning.Progress{}, err
	}
	return planning.TreeProgress(phases), nil
}

// phaseProject resolves a phase and guards project membership.
func (s *ChecklistService) phaseProject(ctx context.Context, actorID, phaseID string) (*models.Phase, *models.WeddingProject, error) {
	phase, err := s.store.GetPhase(ctx, phaseID)
	if err != nil {
		return nil, nil, err
	}
	project, err := memberProject(ctx, s.store, actorID, phase.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return phase, project, nil
}

// taskProject resolves a task and guards project membership.
func (s *ChecklistService) taskProject(ctx context.Context, actorID, taskID string) (*models.Task, *models.WeddingProject, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	_, project, err := s.phaseProject(ctx, actorID, task.PhaseID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}
