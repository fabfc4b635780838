package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/weddingplan/internal/auth"
	"github.com/mmynk/weddingplan/internal/invite"
	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
	"github.com/mmynk/weddingplan/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createMember(t *testing.T, store storage.Store, name, email string) *models.Member {
	t.Helper()

	member := &models.Member{DisplayName: name, Email: email, PasswordHash: "x"}
	if err := store.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	return member
}

func newProjectService(store storage.Store) *ProjectService {
	return NewProjectService(store, invite.NewCodec("test-salt"))
}

func createProject(t *testing.T, svc *ProjectService, ownerID string) *models.WeddingProject {
	t.Helper()

	project, err := svc.CreateProject(context.Background(), ownerID, CreateProjectRequest{
		BrideName:   "An",
		GroomName:   "Jan",
		WeddingDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC).Unix(),
		TotalBudget: 500000,
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func TestCreateProject(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, svc, owner.ID)

	if !project.IsCreator(owner.ID) {
		t.Error("expected creator to own the project")
	}
	if !project.HasMember(owner.ID) {
		t.Error("expected creator to be a member")
	}

	// One project per member.
	if _, err := svc.CreateProject(ctx, owner.ID, CreateProjectRequest{BrideName: "B", GroomName: "G"}); !errors.Is(err, ErrProjectExists) {
		t.Errorf("expected ErrProjectExists, got %v", err)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")

	if _, err := svc.CreateProject(ctx, owner.ID, CreateProjectRequest{BrideName: " ", GroomName: "Jan"}); !errors.Is(err, ErrEmptyField) {
		t.Errorf("expected ErrEmptyField for blank bride name, got %v", err)
	}
	if _, err := svc.CreateProject(ctx, owner.ID, CreateProjectRequest{BrideName: "An", GroomName: "Jan", TotalBudget: -1}); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestMembershipGuard(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	outsider := createMember(t, store, "Out", "out@example.com")
	project := createProject(t, svc, owner.ID)

	if _, err := svc.GetProject(ctx, outsider.ID, project.ID); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember for outsider, got %v", err)
	}
	if err := svc.UpdateProject(ctx, outsider.ID, project.ID, storage.ProjectUpdate{}); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember on update, got %v", err)
	}
}

func TestJoinByCode(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	friend := createMember(t, store, "Friend", "friend@example.com")
	project := createProject(t, svc, owner.ID)

	code, err := svc.InviteCode(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to get invite code: %v", err)
	}

	joined, err := svc.JoinByCode(ctx, friend.ID, code)
	if err != nil {
		t.Fatalf("failed to join by code: %v", err)
	}
	if joined.ID != project.ID {
		t.Errorf("joined wrong project: got %s want %s", joined.ID, project.ID)
	}
	if !joined.HasMember(friend.ID) {
		t.Error("expected friend to be a member after joining")
	}

	// Joining twice is a conflict, not a duplicate membership.
	if _, err := svc.JoinByCode(ctx, friend.ID, code); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}

	// Garbage codes never resolve.
	if _, err := svc.JoinByCode(ctx, friend.ID, "!!!!!!"); !errors.Is(err, invite.ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	friend := createMember(t, store, "Friend", "friend@example.com")
	project := createProject(t, svc, owner.ID)

	code, _ := svc.InviteCode(ctx, owner.ID, project.ID)
	if _, err := svc.JoinByCode(ctx, friend.ID, code); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	// Non-creators cannot remove members.
	if err := svc.RemoveMember(ctx, friend.ID, project.ID, owner.ID); !errors.Is(err, ErrNotProjectOwner) {
		t.Errorf("expected ErrNotProjectOwner, got %v", err)
	}
	// The creator can never be removed.
	if err := svc.RemoveMember(ctx, owner.ID, project.ID, owner.ID); !errors.Is(err, ErrRemoveCreator) {
		t.Errorf("expected ErrRemoveCreator, got %v", err)
	}

	if err := svc.RemoveMember(ctx, owner.ID, project.ID, friend.ID); err != nil {
		t.Fatalf("failed to remove member: %v", err)
	}
	got, err := svc.GetProject(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to reload project: %v", err)
	}
	if got.HasMember(friend.ID) {
		t.Error("expected friend to be removed")
	}
}

func TestNextToMarry(t *testing.T) {
	store := newTestStore(t)
	svc := newProjectService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, svc, owner.ID)

	svc.pick = func(n int) int { return 0 }
	name, err := svc.NextToMarry(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to pick: %v", err)
	}
	if name != "An" {
		t.Errorf("expected An, got %s", name)
	}

	svc.pick = func(n int) int { return 1 }
	name, _ = svc.NextToMarry(ctx, owner.ID, project.ID)
	if name != "Jan" {
		t.Errorf("expected Jan, got %s", name)
	}
}

func TestSeedTimeline(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	checklist := NewChecklistService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, projects, owner.ID)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inserted, err := checklist.SeedTimeline(ctx, owner.ID, project.ID, start)
	if err != nil {
		t.Fatalf("failed to seed timeline: %v", err)
	}
	if !inserted {
		t.Fatal("expected first seed to insert")
	}

	phases, err := checklist.ListPhases(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to list phases: %v", err)
	}
	if len(phases) != 5 {
		t.Fatalf("expected 5 phases, got %d", len(phases))
	}
	if got := time.Unix(phases[0].EndAt, 0).UTC(); !got.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first phase ends at %v", got)
	}
	if got := time.Unix(phases[1].EndAt, 0).UTC(); !got.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second phase ends at %v", got)
	}
	for i := 1; i < len(phases); i++ {
		if phases[i].StartAt != phases[i-1].EndAt {
			t.Errorf("phase %d does not start where phase %d ends", i, i-1)
		}
	}
	// Seeded tasks are pre-assigned to the creator.
	if len(phases[0].Tasks) == 0 || len(phases[0].Tasks[0].AssigneeIDs) != 1 || phases[0].Tasks[0].AssigneeIDs[0] != owner.ID {
		t.Error("expected seeded tasks assigned to the creator")
	}

	// Seeding again is a reported no-op.
	inserted, err = checklist.SeedTimeline(ctx, owner.ID, project.ID, start)
	if err != nil {
		t.Fatalf("second seed errored: %v", err)
	}
	if inserted {
		t.Error("expected second seed to be a no-op")
	}
	again, _ := checklist.ListPhases(ctx, owner.ID, project.ID)
	if len(again) != 5 {
		t.Errorf("expected phase count unchanged, got %d", len(again))
	}
}

func TestPhaseRules(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	checklist := NewChecklistService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	friend := createMember(t, store, "Friend", "friend@example.com")
	project := createProject(t, projects, owner.ID)
	code, _ := projects.InviteCode(ctx, owner.ID, project.ID)
	if _, err := projects.JoinByCode(ctx, friend.ID, code); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	if _, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Planning", 200, 100); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}

	first, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Planning", 100, 200)
	if err != nil {
		t.Fatalf("failed to create phase: %v", err)
	}
	if _, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Overlap", 150, 300); !errors.Is(err, ErrPhaseOverlap) {
		t.Errorf("expected ErrPhaseOverlap, got %v", err)
	}

	// Any member edits, only the creator deletes.
	if err := checklist.UpdatePhase(ctx, friend.ID, first.ID, "Planning v2", 100, 250); err != nil {
		t.Errorf("member should edit phases: %v", err)
	}
	if err := checklist.DeletePhase(ctx, friend.ID, first.ID); !errors.Is(err, ErrNotProjectOwner) {
		t.Errorf("expected ErrNotProjectOwner on delete, got %v", err)
	}
	if err := checklist.DeletePhase(ctx, owner.ID, first.ID); err != nil {
		t.Errorf("creator should delete phases: %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	checklist := NewChecklistService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	friend := createMember(t, store, "Friend", "friend@example.com")
	project := createProject(t, projects, owner.ID)
	code, _ := projects.InviteCode(ctx, owner.ID, project.ID)
	if _, err := projects.JoinByCode(ctx, friend.ID, code); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	phase, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Planning", 100, 200)
	if err != nil {
		t.Fatalf("failed to create phase: %v", err)
	}

	outsider := createMember(t, store, "Out", "out@example.com")
	if _, err := checklist.CreateTask(ctx, owner.ID, phase.ID, CreateTaskRequest{Name: "Book venue", AssigneeIDs: []string{outsider.ID}}); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember for outsider assignee, got %v", err)
	}

	task, err := checklist.CreateTask(ctx, owner.ID, phase.ID, CreateTaskRequest{Name: "Book venue", AssigneeIDs: []string{owner.ID}})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	changed, err := checklist.SetTaskCompleted(ctx, friend.ID, task.ID, true)
	if err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	if !changed {
		t.Error("expected first completion to report a change")
	}
	changed, err = checklist.SetTaskCompleted(ctx, friend.ID, task.ID, true)
	if err != nil {
		t.Fatalf("repeat completion errored: %v", err)
	}
	if changed {
		t.Error("expected repeated completion to be a no-op")
	}

	progress, err := checklist.Progress(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to compute progress: %v", err)
	}
	if progress.Completed != 1 || progress.Total != 1 {
		t.Errorf("expected 1/1, got %d/%d", progress.Completed, progress.Total)
	}

	available, err := checklist.AvailableAssignees(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("failed to list available assignees: %v", err)
	}
	if len(available) != 1 || available[0].ID != friend.ID {
		t.Errorf("expected only the friend to be available, got %v", available)
	}

	if err := checklist.AssignMember(ctx, owner.ID, task.ID, friend.ID); err != nil {
		t.Fatalf("failed to assign member: %v", err)
	}
	available, _ = checklist.AvailableAssignees(ctx, owner.ID, task.ID)
	if len(available) != 0 {
		t.Errorf("expected no available assignees, got %v", available)
	}

	// Any member deletes tasks.
	if err := checklist.DeleteTask(ctx, friend.ID, task.ID); err != nil {
		t.Errorf("member should delete tasks: %v", err)
	}
}

func TestBudgetLifecycle(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	budget := NewBudgetService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	friend := createMember(t, store, "Friend", "friend@example.com")
	project := createProject(t, projects, owner.ID)
	code, _ := projects.InviteCode(ctx, owner.ID, project.ID)
	if _, err := projects.JoinByCode(ctx, friend.ID, code); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	group, err := budget.CreateGroup(ctx, owner.ID, project.ID, "Venue")
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	if _, err := budget.CreateActivity(ctx, owner.ID, group.ID, CreateActivityRequest{Name: "Hall", ExpectedBudget: -1, Payer: models.PayerBoth}); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := budget.CreateActivity(ctx, owner.ID, group.ID, CreateActivityRequest{Name: "Hall", Payer: "uncle"}); !errors.Is(err, ErrInvalidPayer) {
		t.Errorf("expected ErrInvalidPayer, got %v", err)
	}

	if _, err := budget.CreateActivity(ctx, owner.ID, group.ID, CreateActivityRequest{
		Name: "Hall", ExpectedBudget: 100, ActualBudget: 50, Payer: models.PayerBoth,
	}); err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}
	if _, err := budget.CreateActivity(ctx, friend.ID, group.ID, CreateActivityRequest{
		Name: "Catering", ExpectedBudget: 50, ActualBudget: 30, Payer: models.PayerBride,
	}); err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	summary, err := budget.Totals(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to compute totals: %v", err)
	}
	if summary.Project.Expected != 150 || summary.Project.Actual != 80 {
		t.Errorf("expected totals 150/80, got %d/%d", summary.Project.Expected, summary.Project.Actual)
	}
	if got := summary.ByGroup[group.ID]; got.Expected != 150 || got.Actual != 80 {
		t.Errorf("expected group totals 150/80, got %d/%d", got.Expected, got.Actual)
	}

	// Only the creator deletes groups.
	if err := budget.DeleteGroup(ctx, friend.ID, group.ID); !errors.Is(err, ErrNotProjectOwner) {
		t.Errorf("expected ErrNotProjectOwner, got %v", err)
	}
	if err := budget.DeleteGroup(ctx, owner.ID, group.ID); err != nil {
		t.Errorf("creator should delete groups: %v", err)
	}
}

func TestSeedBudget(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	budget := NewBudgetService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, projects, owner.ID)

	inserted, err := budget.SeedBudget(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}
	if !inserted {
		t.Fatal("expected first seed to insert")
	}

	groups, err := budget.ListGroups(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("failed to list groups: %v", err)
	}
	if len(groups) == 0 {
		t.Fatal("expected seeded groups")
	}
	for _, group := range groups {
		for _, activity := range group.Activities {
			if !activity.Payer.Valid() {
				t.Errorf("seeded activity %q has invalid payer %q", activity.Name, activity.Payer)
			}
		}
	}

	inserted, err = budget.SeedBudget(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("second seed errored: %v", err)
	}
	if inserted {
		t.Error("expected second seed to be a no-op")
	}
}

type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Notify(_ context.Context, projectID, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestReminderSweep(t *testing.T) {
	store := newTestStore(t)
	projects := newProjectService(store)
	checklist := NewChecklistService(store)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, projects, owner.ID)

	now := time.Now()
	soon, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Final arrangements", now.Unix(), now.Add(3*24*time.Hour).Unix())
	if err != nil {
		t.Fatalf("failed to create phase: %v", err)
	}
	if _, err := checklist.CreateTask(ctx, owner.ID, soon.ID, CreateTaskRequest{Name: "Confirm caterer"}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	// A phase with no open tasks stays silent.
	done, err := checklist.CreatePhase(ctx, owner.ID, project.ID, "Wedding week", soon.EndAt, now.Add(5*24*time.Hour).Unix())
	if err != nil {
		t.Fatalf("failed to create phase: %v", err)
	}
	_ = done

	notifier := &captureNotifier{}
	reminders := NewReminderService(store, notifier, 7*24*time.Hour)
	if err := reminders.Sweep(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected 1 reminder, got %d: %v", len(notifier.messages), notifier.messages)
	}
}

func TestAuthService(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager("test-secret", time.Hour),
	)
	ctx := context.Background()

	member, token, err := svc.Register(ctx, "An@Example.com", "An", "longenough")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if member.Email != "an@example.com" {
		t.Errorf("expected lowercased email, got %s", member.Email)
	}

	if _, _, err := svc.Register(ctx, "an@example.com", "An again", "longenough"); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if _, _, err := svc.Register(ctx, "b@example.com", "B", "short"); err == nil {
		t.Error("expected weak password to be rejected")
	}

	if _, _, err := svc.Login(ctx, "an@example.com", "wrong-password"); err == nil {
		t.Error("expected wrong password to fail")
	}
	got, token, err := svc.Login(ctx, "an@example.com", "longenough")
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	if got.ID != member.ID || token == "" {
		t.Error("expected login to return the registered member and a token")
	}
}
