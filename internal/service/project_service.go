package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/mmynk/weddingplan/internal/invite"
	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

// ProjectService owns the project lifecycle: creation, field updates,
// membership, invite codes and the couple's randomizer. Every operation
// takes the acting member explicitly; nothing here reads ambient identity.
type ProjectService struct {
	store storage.Store
	codec *invite.Codec

	// pick selects a number in [0, n); swapped out in tests.
	pick func(n int) int
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store storage.Store, codec *invite.Codec) *ProjectService {
	return &ProjectService{store: store, codec: codec, pick: rand.Intn}
}

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	BrideName   string
	GroomName   string
	WeddingDate int64
	TotalBudget int64
}

// CreateProject creates the actor's project. A member owns at most one.
func (s *ProjectService) CreateProject(ctx context.Context, actorID string, req CreateProjectRequest) (*models.WeddingProject, error) {
	if strings.TrimSpace(req.BrideName) == "" || strings.TrimSpace(req.GroomName) == "" {
		return nil, ErrEmptyField
	}
	if req.TotalBudget < 0 {
		return nil, ErrNegativeAmount
	}

	if existing, err := s.store.GetProjectByOwner(ctx, actorID); err == nil && existing != nil {
		return nil, ErrProjectExists
	}

	project := &models.WeddingProject{
		BrideName:   strings.TrimSpace(req.BrideName),
		GroomName:   strings.TrimSpace(req.GroomName),
		WeddingDate: req.WeddingDate,
		TotalBudget: req.TotalBudget,
		CreatorID:   actorID,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		slog.Error("CreateProject failed", "actor_id", actorID, "error", err)
		return nil, err
	}

	slog.Info("Project created", "project_id", project.ID, "creator_id", actorID)
	return project, nil
}

// GetOwnProject returns the project the actor created.
func (s *ProjectService) GetOwnProject(ctx context.Context, actorID string) (*models.WeddingProject, error) {
	return s.store.GetProjectByOwner(ctx, actorID)
}

// GetProject returns a project the actor participates in.
func (s *ProjectService) GetProject(ctx context.Context, actorID, projectID string) (*models.WeddingProject, error) {
	return s.memberProject(ctx, actorID, projectID)
}

// UpdateProject applies field changes. Any member may edit project fields;
// only deletes and member removal are creator-only.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID, projectID string, upd storage.ProjectUpdate) error {
	if upd.TotalBudget != nil && *upd.TotalBudget < 0 {
		return ErrNegativeAmount
	}
	if upd.BrideName != nil && strings.TrimSpace(*upd.BrideName) == "" {
		return ErrEmptyField
	}
	if upd.GroomName != nil && strings.TrimSpace(*upd.GroomName) == "" {
		return ErrEmptyField
	}

	if _, err := s.memberProject(ctx, actorID, projectID); err != nil {
		return err
	}
	return s.store.UpdateProject(ctx, projectID, upd)
}

// InviteCode returns the project's shareable code. The code is derived
// from the stored invite ID, so it is stable for the project's lifetime.
func (s *ProjectService) InviteCode(ctx context.Context, actorID, projectID string) (string, error) {
	project, err := s.memberProject(ctx, actorID, projectID)
	if err != nil {
		return "", err
	}
	return s.codec.Encode(project.InviteID)
}

// JoinByCode redeems an invite code for the acting member. Decoding alone
// grants nothing; the project lookup and membership write happen here,
// server-side.
func (s *ProjectService) JoinByCode(ctx context.Context, actorID, code string) (*models.WeddingProject, error) {
	inviteID, err := s.codec.Decode(code)
	if err != nil {
		return nil, err
	}

	project, err := s.store.GetProjectByInviteID(ctx, inviteID)
	if err != nil {
		// A decodable code for a project that does not exist is still an
		// invalid code from the caller's point of view.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invite.ErrInvalidCode
		}
		return nil, err
	}

	if project.HasMember(actorID) {
		return nil, ErrAlreadyMember
	}
	if err := s.store.AddMember(ctx, project.ID, actorID); err != nil {
		slog.Error("JoinByCode failed", "project_id", project.ID, "actor_id", actorID, "error", err)
		return nil, err
	}

	slog.Info("Member joined by code", "project_id", project.ID, "member_id", actorID)
	project.MemberIDs = append(project.MemberIDs, actorID)
	return project, nil
}

// RemoveMember revokes a membership. Creator-only, and the creator can
// never be removed.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, memberID string) error {
	project, err := s.memberProject(ctx, actorID, projectID)
	if err != nil {
		return err
	}
	if !project.IsCreator(actorID) {
		return ErrNotProjectOwner
	}
	if memberID == project.CreatorID {
		return ErrRemoveCreator
	}
	return s.store.RemoveMember(ctx, projectID, memberID)
}

// Members returns the directory profiles of the project's members.
func (s *ProjectService) Members(ctx context.Context, actorID, projectID string) ([]models.Profile, error) {
	project, err := s.memberProject(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	return s.store.GetProfiles(ctx, project.MemberIDs)
}

// NextToMarry picks one of the two partner names at random. Pure fun; the
// couple spins it when they cannot decide who handles the next errand.
func (s *ProjectService) NextToMarry(ctx context.Context, actorID, projectID string) (string, error) {
	project, err := s.memberProject(ctx, actorID, projectID)
	if err != nil {
		return "", err
	}
	names := []string{project.BrideName, project.GroomName}
	return names[s.pick(len(names))], nil
}

func (s *ProjectService) memberProject(ctx context.Context, actorID, projectID string) (*models.WeddingProject, error) {
	return memberProject(ctx, s.store, actorID, projectID)
}
