package models

import "fmt"

// Payer identifies which side of the couple pays for an activity.
// It is a closed enumeration; anything else is rejected at the boundary.
type Payer string

const (
	PayerBride Payer = "bride"
	PayerGroom Payer = "groom"
	PayerBoth  Payer = "both"
)

// Valid reports whether p is one of the known payer values.
func (p Payer) Valid() bool {
	switch p {
	case PayerBride, PayerGroom, PayerBoth:
		return true
	}
	return false
}

// ParsePayer converts a wire string into a Payer, rejecting unknown values.
func ParsePayer(s string) (Payer, error) {
	p := Payer(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown payer %q", s)
	}
	return p, nil
}

// BudgetGroup is a named spending category owning an ordered list of
// activities. Structurally parallel to Phase, but it partitions money
// rather than time.
type BudgetGroup struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// ProjectID is the project this group belongs to.
	ProjectID string `json:"project_id"`

	// Name is the display name of the category (e.g., "Venue & catering").
	Name string `json:"name"`

	// Position fixes the presentation order within the project.
	Position int `json:"position"`

	// Activities are the group's line items in order. Populated when the
	// group is loaded as part of the full tree.
	Activities []Activity `json:"activities"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// Activity is a single budget line item.
type Activity struct {
	// ID is the unique identifier for the activity (UUID format).
	ID string `json:"id"`

	// GroupID is the budget group this activity belongs to.
	GroupID string `json:"group_id"`

	// Name is the short line-item label.
	Name string `json:"name"`

	// Note is free-form detail text.
	Note string `json:"note"`

	// ExpectedBudget and ActualBudget are non-negative amounts in whole
	// currency units (no minor units).
	ExpectedBudget int64 `json:"expected_budget"`
	ActualBudget   int64 `json:"actual_budget"`

	// Payer records which partner pays for this item.
	Payer Payer `json:"payer"`

	// Position fixes the presentation order within the group.
	Position int `json:"position"`

	// CreatedAt is the Unix timestamp when the activity was created.
	CreatedAt int64 `json:"created_at"`
}
