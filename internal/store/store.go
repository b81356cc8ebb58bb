package store

import (
	"context"

	"github.com/presentos/present-cli/internal/model"
)

// Store defines the local persistence interface. Three records are kept,
// independently keyed and independently cleared: the notification feed,
// the chat transcript, and the login session. The feed and transcript
// are replaced wholesale on every mutation; their owners hold the
// authoritative in-memory copy.
type Store interface {
	// === Notification feed ===

	SaveFeed(ctx context.Context, feed []model.Notification) error
	LoadFeed(ctx context.Context) ([]model.Notification, error)

	// === Chat transcript ===

	SaveTranscript(ctx context.Context, msgs []model.ChatMessage) error
	LoadTranscript(ctx context.Context) ([]model.ChatMessage, error)
	DeleteTranscript(ctx context.Context) error

	// === Session ===

	SaveSession(ctx context.Context, s model.Session) error
	GetSession(ctx context.Context) (*model.Session, error)
	DeleteSession(ctx context.Context) error
}
