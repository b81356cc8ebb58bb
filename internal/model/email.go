package model

// Email is one message from the backend's recent-mail listing. The
// backend queries unread mail only, so every listed message is unread
// and the payload carries no read flag.
type Email struct {
	// ID is the backend identifier for this message.
	ID string `json:"id"`

	// From is the sender display string.
	From string `json:"from"`

	// Subject is the message subject line.
	Subject string `json:"subject"`

	// Snippet is a short plain-text preview of the body.
	Snippet string `json:"snippet"`

	// Date is the received date as reported by the backend.
	Date string `json:"date"`
}
