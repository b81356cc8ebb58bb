package model

// CalendarEvent is a backend-owned calendar entry for the current day.
type CalendarEvent struct {
	// ID is the backend identifier for this event.
	ID string `json:"id"`

	// Title is the event summary line.
	Title string `json:"title"`

	// StartTime and EndTime are ISO-8601 timestamps from the backend.
	StartTime string `json:"start"`
	EndTime   string `json:"end"`

	// Location is the meeting place or link, empty when unset.
	Location string `json:"location"`

	// Description is the full event body.
	Description string `json:"description"`
}
