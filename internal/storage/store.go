// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/weddingplan/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
// Implementations wrap it with detail; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// ProjectUpdate carries the optional project fields an update may change.
// Nil pointers leave the stored value untouched.
type ProjectUpdate struct {
	BrideName   *string
	GroomName   *string
	WeddingDate *int64
	TotalBudget *int64
}

// TaskUpdate carries the optional task fields an update may change.
type TaskUpdate struct {
	Name *string
	Note *string
}

// ActivityUpdate carries the optional activity fields an update may change.
type ActivityUpdate struct {
	Name           *string
	Note           *string
	ExpectedBudget *int64
	ActualBudget   *int64
	Payer          *models.Payer
}

// ProjectStore persists wedding projects and their membership sets.
type ProjectStore interface {
	// CreateProject persists a new project. ID, CreatedAt and InviteID are
	// populated by the store when unset; the creator is recorded as a member.
	CreateProject(ctx context.Context, project *models.WeddingProject) error

	// GetProject retrieves a project by ID, members included.
	GetProject(ctx context.Context, projectID string) (*models.WeddingProject, error)

	// GetProjectByOwner retrieves the project created by the given member.
	GetProjectByOwner(ctx context.Context, ownerID string) (*models.WeddingProject, error)

	// GetProjectByInviteID resolves a decoded invite code to its project.
	GetProjectByInviteID(ctx context.Context, inviteID uint32) (*models.WeddingProject, error)

	// UpdateProject applies the non-nil fields of upd.
	UpdateProject(ctx context.Context, projectID string, upd ProjectUpdate) error

	// AddMember grants membership. Adding an existing member is a no-op.
	AddMember(ctx context.Context, projectID, memberID string) error

	// RemoveMember revokes membership.
	RemoveMember(ctx context.Context, projectID, memberID string) error
}

// PhaseStore persists phases and their embedded tasks.
type PhaseStore interface {
	// ListPhases returns the project's phases in position order, each with
	// its tasks (and their assignees) embedded.
	ListPhases(ctx context.Context, projectID string) ([]models.Phase, error)

	// CreatePhase appends a phase at the end of the project's sequence.
	CreatePhase(ctx context.Context, phase *models.Phase) error

	// GetPhase retrieves a single phase with its tasks.
	GetPhase(ctx context.Context, phaseID string) (*models.Phase, error)

	// UpdatePhase replaces the phase's name and boundary instants.
	UpdatePhase(ctx context.Context, phaseID, name string, startAt, endAt int64) error

	// DeletePhase removes the phase and its tasks.
	DeletePhase(ctx context.Context, phaseID string) error

	// SeedPhasesIfEmpty inserts the given phases (tasks included) only when
	// the project has none yet. Returns whether anything was inserted.
	SeedPhasesIfEmpty(ctx context.Context, projectID string, phases []models.Phase) (inserted bool, err error)

	// ListPhasesEndingBetween returns all phases, across projects, whose
	// end instant falls in [from, to). Tasks are embedded. Used by the
	// deadline reminder sweep.
	ListPhasesEndingBetween(ctx context.Context, from, to int64) ([]models.Phase, error)
}

// TaskStore persists checklist tasks.
type TaskStore interface {
	// CreateTask appends a task at the end of its phase.
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task with its assignees.
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// UpdateTask applies the non-nil fields of upd.
	UpdateTask(ctx context.Context, taskID string, upd TaskUpdate) error

	// DeleteTask removes the task.
	DeleteTask(ctx context.Context, taskID string) error

	// SetCompleted sets the completion flag to the desired value. Returns
	// whether the stored value actually changed, so callers can distinguish
	// a real toggle from an idempotent repeat.
	SetCompleted(ctx context.Context, taskID string, completed bool) (changed bool, err error)

	// AddAssignee assigns a member to the task. Idempotent.
	AddAssignee(ctx context.Context, taskID, memberID string) error

	// RemoveAssignee unassigns a member from the task.
	RemoveAssignee(ctx context.Context, taskID, memberID string) error
}

// BudgetStore persists budget groups and activities. It mirrors the
// phase/task shape one level down: groups partition money, not time.
type BudgetStore interface {
	ListGroups(ctx context.Context, projectID string) ([]models.BudgetGroup, error)
	CreateGroup(ctx context.Context, group *models.BudgetGroup) error
	GetGroup(ctx context.Context, groupID string) (*models.BudgetGroup, error)
	UpdateGroup(ctx context.Context, groupID, name string) error
	DeleteGroup(ctx context.Context, groupID string) error
	SeedGroupsIfEmpty(ctx context.Context, projectID string, groups []models.BudgetGroup) (inserted bool, err error)

	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetActivity(ctx context.Context, activityID string) (*models.Activity, error)
	UpdateActivity(ctx context.Context, activityID string, upd ActivityUpdate) error
	DeleteActivity(ctx context.Context, activityID string) error
}

// MemberStore persists member accounts and serves the read-only directory.
type MemberStore interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)

	// GetProfiles returns the directory view for the given member IDs.
	// Unknown IDs are silently skipped.
	GetProfiles(ctx context.Context, ids []string) ([]models.Profile, error)
}

// Store is the full storage contract the services are wired against.
// The abstraction allows swapping backends without touching the services.
type Store interface {
	ProjectStore
	PhaseStore
	TaskStore
	BudgetStore
	MemberStore

	// Close releases any resources held by the store.
	Close() error
}
