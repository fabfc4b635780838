package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createMember(t *testing.T, store *SQLiteStore, name, email string) *models.Member {
	t.Helper()

	m := &models.Member{DisplayName: name, Email: email, PasswordHash: "x"}
	if err := store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("failed to create member %s: %v", name, err)
	}
	return m
}

func createProject(t *testing.T, store *SQLiteStore, creatorID string) *models.WeddingProject {
	t.Helper()

	p := &models.WeddingProject{BrideName: "An", GroomName: "Binh", CreatorID: creatorID}
	if err := store.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

func TestCreateAndGetProject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)

	if project.ID == "" || project.CreatedAt == 0 {
		t.Fatalf("store did not populate identity fields: %+v", project)
	}
	if project.InviteID == 0 {
		t.Fatal("store did not assign an invite id")
	}

	got, err := store.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.BrideName != "An" || got.GroomName != "Binh" {
		t.Errorf("unexpected names: %+v", got)
	}
	if len(got.MemberIDs) != 1 || got.MemberIDs[0] != owner.ID {
		t.Errorf("creator not recorded as member: %v", got.MemberIDs)
	}

	byOwner, err := store.GetProjectByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetProjectByOwner failed: %v", err)
	}
	if byOwner.ID != project.ID {
		t.Errorf("GetProjectByOwner returned %s, want %s", byOwner.ID, project.ID)
	}

	byInvite, err := store.GetProjectByInviteID(ctx, project.InviteID)
	if err != nil {
		t.Fatalf("GetProjectByInviteID failed: %v", err)
	}
	if byInvite.ID != project.ID {
		t.Errorf("GetProjectByInviteID returned %s, want %s", byInvite.ID, project.ID)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProject(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProjectPartialFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)

	date := int64(1767225600)
	budget := int64(20000)
	err := store.UpdateProject(ctx, project.ID, storage.ProjectUpdate{WeddingDate: &date, TotalBudget: &budget})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}

	got, _ := store.GetProject(ctx, project.ID)
	if got.WeddingDate != date || got.TotalBudget != budget {
		t.Errorf("update not applied: %+v", got)
	}
	if got.BrideName != "An" {
		t.Errorf("untouched field changed: %q", got.BrideName)
	}
}

func TestMembership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	helper := createMember(t, store, "Chi", "chi@example.com")
	project := createProject(t, store, owner.ID)

	if err := store.AddMember(ctx, project.ID, helper.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// Adding twice is a no-op, not an error.
	if err := store.AddMember(ctx, project.ID, helper.ID); err != nil {
		t.Fatalf("repeat AddMember failed: %v", err)
	}

	got, _ := store.GetProject(ctx, project.ID)
	if len(got.MemberIDs) != 2 {
		t.Fatalf("member count = %d, want 2", len(got.MemberIDs))
	}

	if err := store.RemoveMember(ctx, project.ID, helper.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := store.RemoveMember(ctx, project.ID, helper.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("removing absent member: expected ErrNotFound, got %v", err)
	}
}

func TestPhaseAndTaskCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)

	first := &models.Phase{ProjectID: project.ID, Name: "Foundations", StartAt: 100, EndAt: 200}
	second := &models.Phase{ProjectID: project.ID, Name: "Vendors", StartAt: 200, EndAt: 300}
	for _, p := range []*models.Phase{first, second} {
		if err := store.CreatePhase(ctx, p); err != nil {
			t.Fatalf("CreatePhase failed: %v", err)
		}
	}
	if first.Position != 0 || second.Position != 1 {
		t.Errorf("positions = %d, %d; want 0, 1", first.Position, second.Position)
	}

	task := &models.Task{PhaseID: first.ID, Name: "Book venue", Note: "ask about catering", AssigneeIDs: []string{owner.ID}}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	phases, err := store.ListPhases(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListPhases failed: %v", err)
	}
	if len(phases) != 2 {
		t.Fatalf("phase count = %d, want 2", len(phases))
	}
	if phases[0].Name != "Foundations" || phases[1].Name != "Vendors" {
		t.Errorf("phases out of order: %s, %s", phases[0].Name, phases[1].Name)
	}
	if len(phases[0].Tasks) != 1 || phases[0].Tasks[0].Name != "Book venue" {
		t.Fatalf("embedded task missing: %+v", phases[0].Tasks)
	}
	if got := phases[0].Tasks[0].AssigneeIDs; len(got) != 1 || got[0] != owner.ID {
		t.Errorf("assignees = %v, want [%s]", got, owner.ID)
	}

	if err := store.UpdatePhase(ctx, first.ID, "Foundations!", 100, 250); err != nil {
		t.Fatalf("UpdatePhase failed: %v", err)
	}
	updated, _ := store.GetPhase(ctx, first.ID)
	if updated.Name != "Foundations!" || updated.EndAt != 250 {
		t.Errorf("phase update not applied: %+v", updated)
	}

	// Deleting the phase cascades to tasks.
	if err := store.DeletePhase(ctx, first.ID); err != nil {
		t.Fatalf("DeletePhase failed: %v", err)
	}
	if _, err := store.GetTask(ctx, task.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("task survived phase delete: %v", err)
	}
}

func TestSetCompletedReportsChange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)
	phase := &models.Phase{ProjectID: project.ID, Name: "P", StartAt: 1, EndAt: 2}
	if err := store.CreatePhase(ctx, phase); err != nil {
		t.Fatal(err)
	}
	task := &models.Task{PhaseID: phase.ID, Name: "T"}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	changed, err := store.SetCompleted(ctx, task.ID, true)
	if err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if !changed {
		t.Error("first toggle should report a change")
	}

	changed, err = store.SetCompleted(ctx, task.ID, true)
	if err != nil {
		t.Fatalf("repeat SetCompleted failed: %v", err)
	}
	if changed {
		t.Error("setting the current value should be a no-op")
	}

	changed, err = store.SetCompleted(ctx, task.ID, false)
	if err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if !changed {
		t.Error("toggling back should report a change")
	}
	got, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Completed {
		t.Error("expected the stored flag to be false again")
	}

	if _, err := store.SetCompleted(ctx, "missing", true); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing task, got %v", err)
	}
}

func TestSeedPhasesIfEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)

	seeds := []models.Phase{
		{Name: "A", StartAt: 1, EndAt: 2, Tasks: []models.Task{
			{Name: "t1", AssigneeIDs: []string{owner.ID}},
			{Name: "t2"},
		}},
		{Name: "B", StartAt: 2, EndAt: 3},
	}

	inserted, err := store.SeedPhasesIfEmpty(ctx, project.ID, seeds)
	if err != nil {
		t.Fatalf("SeedPhasesIfEmpty failed: %v", err)
	}
	if !inserted {
		t.Fatal("expected first seed to insert")
	}

	// A second seed must be a reported no-op, not a duplicate insert.
	inserted, err = store.SeedPhasesIfEmpty(ctx, project.ID, seeds)
	if err != nil {
		t.Fatalf("repeat SeedPhasesIfEmpty failed: %v", err)
	}
	if inserted {
		t.Error("seed into a non-empty project must not insert")
	}

	phases, _ := store.ListPhases(ctx, project.ID)
	if len(phases) != 2 {
		t.Fatalf("phase count = %d, want 2", len(phases))
	}
	if len(phases[0].Tasks) != 2 {
		t.Errorf("seeded task count = %d, want 2", len(phases[0].Tasks))
	}
	if got := phases[0].Tasks[0].AssigneeIDs; len(got) != 1 || got[0] != owner.ID {
		t.Errorf("seeded assignee = %v, want [%s]", got, owner.ID)
	}
}

func TestBudgetCRUDAndSeed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := createMember(t, store, "An", "an@example.com")
	project := createProject(t, store, owner.ID)

	seeds := []models.BudgetGroup{
		{Name: "Venue", Activities: []models.Activity{
			{Name: "Hall", ExpectedBudget: 100, ActualBudget: 80, Payer: models.PayerBoth},
			{Name: "Catering", ExpectedBudget: 50, Payer: models.PayerBoth},
		}},
	}
	inserted, err := store.SeedGroupsIfEmpty(ctx, project.ID, seeds)
	if err != nil || !inserted {
		t.Fatalf("SeedGroupsIfEmpty = %v, %v; want true, nil", inserted, err)
	}
	if inserted, _ = store.SeedGroupsIfEmpty(ctx, project.ID, seeds); inserted {
		t.Error("repeat budget seed must be a no-op")
	}

	groups, err := store.ListGroups(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Activities) != 2 {
		t.Fatalf("unexpected tree: %+v", groups)
	}

	activity := &models.Activity{GroupID: groups[0].ID, Name: "Cake", Payer: models.PayerBride}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}
	if activity.Position != 2 {
		t.Errorf("activity position = %d, want 2", activity.Position)
	}

	actual := int64(25)
	if err := store.UpdateActivity(ctx, activity.ID, storage.ActivityUpdate{ActualBudget: &actual}); err != nil {
		t.Fatalf("UpdateActivity failed: %v", err)
	}
	got, _ := store.GetActivity(ctx, activity.ID)
	if got.ActualBudget != 25 || got.Payer != models.PayerBride {
		t.Errorf("activity update wrong: %+v", got)
	}

	// Deleting the group cascades to activities.
	if err := store.DeleteGroup(ctx, groups[0].ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := store.GetActivity(ctx, activity.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("activity survived group delete: %v", err)
	}
}

func TestMemberDirectory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	an := createMember(t, store, "An", "an@example.com")
	chi := createMember(t, store, "Chi", "chi@example.com")

	byEmail, err := store.GetMemberByEmail(ctx, "an@example.com")
	if err != nil {
		t.Fatalf("GetMemberByEmail failed: %v", err)
	}
	if byEmail.ID != an.ID {
		t.Errorf("wrong member: %+v", byEmail)
	}

	profiles, err := store.GetProfiles(ctx, []string{an.ID, chi.ID, "missing"})
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("profile count = %d, want 2 (unknown ids skipped)", len(profiles))
	}
	for _, p := range profiles {
		if p.ID == "" || p.DisplayName == "" {
			t.Errorf("incomplete profile: %+v", p)
		}
	}

	// Duplicate emails are rejected by the unique index.
	err = store.CreateMember(ctx, &models.Member{DisplayName: "An2", Email: "an@example.com", PasswordHash: "x"})
	if err == nil {
		t.Error("expected duplicate email to fail")
	}
}
