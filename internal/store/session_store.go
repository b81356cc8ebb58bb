package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/presentos/present-cli/internal/model"
)

// SaveSession stores the login session, replacing any existing one.
// Only a single session is kept at a time.
func (s *SQLiteStore) SaveSession(
	ctx context.Context,
	sess model.Session,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session (id, email, display_name, created_at)
		VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Email, sess.DisplayName, sess.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	return tx.Commit()
}

// GetSession returns the current session, or nil when logged out.
func (s *SQLiteStore) GetSession(
	ctx context.Context,
) (*model.Session, error) {
	var sess model.Session
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, email, display_name, created_at
		FROM session LIMIT 1`,
	).Scan(&sess.ID, &sess.Email, &sess.DisplayName, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes the stored session.
func (s *SQLiteStore) DeleteSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
