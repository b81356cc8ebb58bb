package model

// Contact is one entry from the backend contact agent.
type Contact struct {
	// ID is the backend identifier for this contact.
	ID string `json:"id"`

	// Name is the contact's display name.
	Name string `json:"name"`

	// Email is the primary email address, empty when unknown.
	Email string `json:"email"`

	// Phone is the primary phone number, empty when unknown.
	Phone string `json:"phone"`

	// Company and Role describe the contact's affiliation.
	Company string `json:"company"`
	Role    string `json:"role"`

	// Tags are free-form labels attached by the backend.
	Tags []string `json:"tags,omitempty"`

	// Notes holds any free-text notes captured with the contact.
	Notes string `json:"notes"`
}
