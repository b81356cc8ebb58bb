package model

// Task priorities as used by the backend task agent.
const (
	PriorityP1 = "P1"
	PriorityP2 = "P2"
	PriorityP3 = "P3"
	PriorityP4 = "P4"
)

// Task statuses as reported by the backend.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task is a backend-owned work item. The client never mutates tasks
// directly; changes happen through dispatched commands and show up on
// the next refresh.
type Task struct {
	// ID is the backend identifier for this task.
	ID string `json:"id"`

	// Title is the human-readable summary.
	Title string `json:"title"`

	// Avatar is the PAEI avatar the task is filed under
	// (Producer, Administrator, Entrepreneur, Integrator).
	Avatar string `json:"avatar"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// DueDate is the due date in YYYY-MM-DD form, empty when unset.
	DueDate string `json:"due_date"`

	// Tags are free-form labels attached by the backend.
	Tags []string `json:"tags,omitempty"`
}
