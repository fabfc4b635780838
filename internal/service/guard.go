package service

import (
	"context"
	"fmt"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/storage"
)

// memberProject loads a project and checks the actor participates in it.
// Every service operation that touches a project goes through this guard,
// so the membership policy lives in exactly one place.
func memberProject(ctx context.Context, store storage.Store, actorID, projectID string) (*models.WeddingProject, error) {
	project, err := store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(actorID) {
		return nil, fmt.Errorf("member %s, project %s: %w", actorID, projectID, ErrNotMember)
	}
	return project, nil
}
