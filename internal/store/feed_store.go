package store

import (
	"context"
	"fmt"

	"github.com/presentos/present-cli/internal/model"
)

// SaveFeed replaces the persisted notification feed with the given
// sequence, preserving its order (index 0 = newest).
func (s *SQLiteStore) SaveFeed(
	ctx context.Context,
	feed []model.Notification,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	const query = `
		INSERT INTO notifications (position, id, kind, message, created_label, read)
		VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing feed insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range feed {
		_, err := stmt.ExecContext(ctx,
			i, n.ID, n.Kind, n.Message, n.CreatedLabel, n.Read,
		)
		if err != nil {
			return fmt.Errorf("inserting notification %d: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// LoadFeed reads the persisted notification feed in stored order.
func (s *SQLiteStore) LoadFeed(
	ctx context.Context,
) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, kind, message, created_label, read
		FROM notifications
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	feed := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID, &n.Kind, &n.Message, &n.CreatedLabel, &n.Read,
		); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		feed = append(feed, n)
	}

	return feed, rows.Err()
}
