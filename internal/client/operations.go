package client

import (
	"context"
	"net/http"
)

// Each operation below sends one minimal command describing the change,
// never the whole tree. Identifiers ride in the URL, fields in the body.

// ProjectFields carries optional project field changes. Nil fields are
// left untouched on the server.
type ProjectFields struct {
	BrideName   *string `json:"bride_name,omitempty"`
	GroomName   *string `json:"groom_name,omitempty"`
	WeddingDate *int64  `json:"wedding_date,omitempty"`
	TotalBudget *int64  `json:"total_budget,omitempty"`
}

// UpdateProject changes project fields.
func (c *Client) UpdateProject(ctx context.Context, fields ProjectFields) error {
	return c.mutate(ctx, http.MethodPut, "/api/projects/"+c.projectID, fields, nil)
}

// SeedTimeline applies the stock timeline template starting at the given
// Unix timestamp. Returns whether anything was inserted.
func (c *Client) SeedTimeline(ctx context.Context, startAt int64) (bool, error) {
	var resp struct {
		Inserted bool `json:"inserted"`
	}
	err := c.mutate(ctx, http.MethodPost, "/api/projects/"+c.projectID+"/phases/seed",
		map[string]int64{"start_at": startAt}, &resp)
	return resp.Inserted, err
}

// CreatePhase appends a phase.
func (c *Client) CreatePhase(ctx context.Context, name string, startAt, endAt int64) error {
	return c.mutate(ctx, http.MethodPost, "/api/projects/"+c.projectID+"/phases",
		map[string]any{"name": name, "start_at": startAt, "end_at": endAt}, nil)
}

// UpdatePhase changes a phase's name and boundaries.
func (c *Client) UpdatePhase(ctx context.Context, phaseID, name string, startAt, endAt int64) error {
	return c.mutate(ctx, http.MethodPut, "/api/phases/"+phaseID,
		map[string]any{"name": name, "start_at": startAt, "end_at": endAt}, nil)
}

// DeletePhase removes a phase and its tasks.
func (c *Client) DeletePhase(ctx context.Context, phaseID string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/phases/"+phaseID, nil, nil)
}

// CreateTask adds a task to a phase.
func (c *Client) CreateTask(ctx context.Context, phaseID, name, note string, assigneeIDs []string) error {
	return c.mutate(ctx, http.MethodPost, "/api/phases/"+phaseID+"/tasks",
		map[string]any{"name": name, "note": note, "assignee_ids": assigneeIDs}, nil)
}

// TaskFields carries optional task field changes.
type TaskFields struct {
	Name *string `json:"name,omitempty"`
	Note *string `json:"note,omitempty"`
}

// UpdateTask edits a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, fields TaskFields) error {
	return c.mutate(ctx, http.MethodPut, "/api/tasks/"+taskID, fields, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil)
}

// SetTaskCompleted sets a task's completion flag. Returns whether the
// server state actually changed.
func (c *Client) SetTaskCompleted(ctx context.Context, taskID string, completed bool) (bool, error) {
	var resp struct {
		Changed bool `json:"changed"`
	}
	err := c.mutate(ctx, http.MethodPut, "/api/tasks/"+taskID+"/completed",
		map[string]bool{"completed": completed}, &resp)
	return resp.Changed, err
}

// AssignMember assigns a member to a task.
func (c *Client) AssignMember(ctx context.Context, taskID, memberID string) error {
	return c.mutate(ctx, http.MethodPost, "/api/tasks/"+taskID+"/assignees",
		map[string]string{"member_id": memberID}, nil)
}

// UnassignMember removes a member from a task.
func (c *Client) UnassignMember(ctx context.Context, taskID, memberID string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/tasks/"+taskID+"/assignees/"+memberID, nil, nil)
}

// CreateGroup adds a budget group.
func (c *Client) CreateGroup(ctx context.Context, name string) error {
	return c.mutate(ctx, http.MethodPost, "/api/projects/"+c.projectID+"/groups",
		map[string]string{"name": name}, nil)
}

// UpdateGroup renames a budget group.
func (c *Client) UpdateGroup(ctx context.Context, groupID, name string) error {
	return c.mutate(ctx, http.MethodPut, "/api/groups/"+groupID,
		map[string]string{"name": name}, nil)
}

// DeleteGroup removes a budget group and its activities.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/groups/"+groupID, nil, nil)
}

// SeedBudget applies the stock budget template. Returns whether anything
// was inserted.
func (c *Client) SeedBudget(ctx context.Context) (bool, error) {
	var resp struct {
		Inserted bool `json:"inserted"`
	}
	err := c.mutate(ctx, http.MethodPost, "/api/projects/"+c.projectID+"/groups/seed", nil, &resp)
	return resp.Inserted, err
}

// ActivityFields carries the fields for creating or editing an activity.
type ActivityFields struct {
	Name           *string `json:"name,omitempty"`
	Note           *string `json:"note,omitempty"`
	ExpectedBudget *int64  `json:"expected_budget,omitempty"`
	ActualBudget   *int64  `json:"actual_budget,omitempty"`
	Payer          *string `json:"payer,omitempty"`
}

// CreateActivity adds a budget line item.
func (c *Client) CreateActivity(ctx context.Context, groupID, name, note string, expected, actual int64, payer string) error {
	return c.mutate(ctx, http.MethodPost, "/api/groups/"+groupID+"/activities", map[string]any{
		"name":            name,
		"note":            note,
		"expected_budget": expected,
		"actual_budget":   actual,
		"payer":           payer,
	}, nil)
}

// UpdateActivity edits a budget line item.
func (c *Client) UpdateActivity(ctx context.Context, activityID string, fields ActivityFields) error {
	return c.mutate(ctx, http.MethodPut, "/api/activities/"+activityID, fields, nil)
}

// DeleteActivity removes a budget line item.
func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/activities/"+activityID, nil, nil)
}
