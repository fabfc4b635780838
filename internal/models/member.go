package models

// Member represents a registered account that can participate in projects
// and be assigned to tasks.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// DisplayName is the name shown in checklists and assignment pickers.
	DisplayName string `json:"display_name"`

	// Email is the member's email address (unique). Used for login.
	Email string `json:"email"`

	// AvatarURL is an optional reference to a profile image. The image
	// itself lives in an external store; this is just the pointer.
	AvatarURL string `json:"avatar_url"`

	// PasswordHash is the bcrypt hash of the member's password.
	// Never serialized to clients.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// Profile is the read-only subset of Member exposed through the member
// directory (display fields only, no credentials).
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
}

// Profile returns the directory view of the member.
func (m *Member) Profile() Profile {
	return Profile{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		AvatarURL:   m.AvatarURL,
	}
}
