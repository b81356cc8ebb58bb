package model

// Role identifies the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in the persisted assistant transcript.
// The sequence alternates user/assistant logically but is not enforced:
// a failed assistant call leaves a dangling user message.
type ChatMessage struct {
	// Role is the message sender.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is the wall-clock creation time in RFC 3339 form.
	Timestamp string `json:"timestamp"`

	// Model is the backend model identifier for assistant turns,
	// empty for user turns.
	Model string `json:"model,omitempty"`

	// TokensUsed is the token count reported for assistant turns.
	TokensUsed int `json:"tokens_used,omitempty"`
}
