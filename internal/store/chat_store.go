package store

import (
	"context"
	"fmt"

	"github.com/presentos/present-cli/internal/model"
)

// SaveTranscript replaces the persisted chat transcript with the given
// message sequence in insertion order.
func (s *SQLiteStore) SaveTranscript(
	ctx context.Context,
	msgs []model.ChatMessage,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chat_messages"); err != nil {
		return fmt.Errorf("clearing transcript: %w", err)
	}

	const query = `
		INSERT INTO chat_messages (position, role, content, timestamp, model, tokens_used)
		VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing transcript insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		_, err := stmt.ExecContext(ctx,
			i, string(m.Role), m.Content, m.Timestamp, m.Model, m.TokensUsed,
		)
		if err != nil {
			return fmt.Errorf("inserting chat message %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadTranscript reads the persisted chat transcript in insertion order.
func (s *SQLiteStore) LoadTranscript(
	ctx context.Context,
) ([]model.ChatMessage, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT role, content, timestamp, model, tokens_used
		FROM chat_messages
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	msgs := []model.ChatMessage{}
	for rows.Next() {
		var m model.ChatMessage
		var role string
		if err := rows.Scan(
			&role, &m.Content, &m.Timestamp, &m.Model, &m.TokensUsed,
		); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = model.Role(role)
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}

// DeleteTranscript removes the persisted chat transcript entirely.
func (s *SQLiteStore) DeleteTranscript(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chat_messages"); err != nil {
		return fmt.Errorf("deleting transcript: %w", err)
	}
	return nil
}
