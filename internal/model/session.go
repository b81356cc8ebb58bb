package model

import "time"

// Session is the local login record. Authentication is a local stub:
// the record's presence gates the client, nothing is verified.
type Session struct {
	// ID is the session identifier, also used as the keyring token key.
	ID string `json:"id"`

	// Email is the address the user logged in with.
	Email string `json:"email"`

	// DisplayName is the name shown in the header.
	DisplayName string `json:"display_name"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`
}
