// Package auth implements the local login stub. Nothing is verified:
// the presence of a session record is what gates the client, and the
// session token lives in the system keyring.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/store"
)

// tokenKey is the keyring entry holding the session token.
const tokenKey = "session-token"

// TokenStore abstracts the keyring so tests can substitute memory.
type TokenStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Manager creates and destroys login sessions.
type Manager struct {
	store  store.Store
	tokens TokenStore
}

// New creates a session manager.
func New(s store.Store, tokens TokenStore) *Manager {
	return &Manager{store: s, tokens: tokens}
}

// Login creates a session for the given identity. No credentials are
// checked; a fresh token is minted and stored alongside the record.
func (m *Manager) Login(
	ctx context.Context,
	email, displayName string,
) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if displayName == "" {
		displayName = email
	}

	sess := model.Session{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}

	if err := m.store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	if err := m.tokens.Set(tokenKey, sess.ID); err != nil {
		return nil, fmt.Errorf("storing session token: %w", err)
	}

	return &sess, nil
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current(ctx context.Context) (*model.Session, error) {
	return m.store.GetSession(ctx)
}

// Logout destroys the session record and its token. Safe to call when
// already logged out.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	// The token may already be gone; that is not an error state.
	_ = m.tokens.Delete(tokenKey)
	return nil
}
