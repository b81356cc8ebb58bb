package model

// Notification kinds not tied to a specific backend agent.
const (
	KindSystem = "system"
	KindGroq   = "groq"
)

// Notification is one entry in the bounded notification feed.
type Notification struct {
	// ID is a monotonic, time-derived identifier, unique within the feed.
	ID int64 `json:"id"`

	// Kind is the originating agent name, or "system"/"groq" for
	// client-side and assistant events.
	Kind string `json:"kind"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// CreatedLabel is the creation time formatted for display.
	CreatedLabel string `json:"created_label"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`
}
