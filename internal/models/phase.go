package models

// Phase is a time-boxed window of the plan owning an ordered list of tasks.
// Phases keep their creation order; they are never re-sorted by date, though
// by convention a phase starts no earlier than the previous phase ends.
type Phase struct {
	// ID is the unique identifier for the phase (UUID format).
	ID string `json:"id"`

	// ProjectID is the project this phase belongs to.
	ProjectID string `json:"project_id"`

	// Name is the display name of the phase (e.g., "Book the venue").
	Name string `json:"name"`

	// StartAt and EndAt bound the phase as Unix timestamps. EndAt >= StartAt.
	StartAt int64 `json:"start_at"`
	EndAt   int64 `json:"end_at"`

	// Position fixes the presentation order within the project.
	Position int `json:"position"`

	// Tasks are the phase's checklist items in order. Populated when the
	// phase is loaded as part of the full tree.
	Tasks []Task `json:"tasks"`

	// CreatedAt is the Unix timestamp when the phase was created.
	CreatedAt int64 `json:"created_at"`
}

// Task is a single checklist item within a phase.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string `json:"id"`

	// PhaseID is the phase this task belongs to.
	PhaseID string `json:"phase_id"`

	// Name is the short checklist label.
	Name string `json:"name"`

	// Note is free-form detail text.
	Note string `json:"note"`

	// Completed is a plain flag, not a timestamped state machine.
	// Setting it to its current value is an idempotent no-op.
	Completed bool `json:"completed"`

	// AssigneeIDs lists the members assigned to this task (zero or more).
	AssigneeIDs []string `json:"assignee_ids"`

	// Position fixes the presentation order within the phase.
	Position int `json:"position"`

	// CreatedAt is the Unix timestamp when the task was created.
	CreatedAt int64 `json:"created_at"`
}
