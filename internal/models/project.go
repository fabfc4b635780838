package models

// WeddingProject is the root aggregate: one wedding being planned by a
// couple and whoever they have invited to help.
type WeddingProject struct {
	// ID is the unique identifier for the project (UUID format).
	ID string `json:"id"`

	// BrideName and GroomName are the two partner display names.
	BrideName string `json:"bride_name"`
	GroomName string `json:"groom_name"`

	// WeddingDate is the target wedding day as a Unix timestamp.
	// Zero until the couple has picked a date.
	WeddingDate int64 `json:"wedding_date"`

	// TotalBudget is the overall budget figure in whole currency units.
	TotalBudget int64 `json:"total_budget"`

	// CreatorID is the member who created the project. The creator is
	// always a member and is the only one allowed to perform destructive
	// group-level operations (delete a phase or budget group, remove
	// members).
	CreatorID string `json:"creator_id"`

	// MemberIDs is the set of members granted access, creator included.
	MemberIDs []string `json:"member_ids"`

	// InviteID is the project's invite event identifier, a small random
	// integer assigned at creation. The invite code is a reversible
	// encoding of this value, so sharing the project never mints a new
	// code. Unique across projects.
	InviteID uint32 `json:"-"`

	// CreatedAt is the Unix timestamp when the project was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether the given member participates in the project.
func (p *WeddingProject) HasMember(memberID string) bool {
	for _, id := range p.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsCreator reports whether the given member is the project creator.
func (p *WeddingProject) IsCreator(memberID string) bool {
	return p.CreatorID == memberID
}
