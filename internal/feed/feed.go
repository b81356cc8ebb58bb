// Package feed maintains the durable, capacity-bounded notification log.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/presentos/present-cli/internal/logging"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/store"
)

// DefaultCapacity is the feed bound used when the configured capacity
// is missing or invalid.
const DefaultCapacity = 20

// Feed is an append-only, newest-first notification log. Every mutation
// truncates to capacity and persists the whole feed while still holding
// the lock, so concurrent mutations cannot persist out of order;
// persistence failures degrade to in-memory state plus a log line.
type Feed struct {
	mu       sync.Mutex
	store    store.Store
	items    []model.Notification
	capacity int
	lastID   int64
}

// New creates a feed backed by the given store.
func New(s store.Store, capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		store:    s,
		capacity: capacity,
	}
}

// Load replaces the in-memory feed with the persisted one. Called at
// session start and after external mutations to the stored feed.
func (f *Feed) Load(ctx context.Context) error {
	items, err := f.store.LoadFeed(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = items
	for _, n := range items {
		if n.ID > f.lastID {
			f.lastID = n.ID
		}
	}
	return nil
}

// Push prepends a new notification, truncates to capacity, persists,
// and returns the created record.
func (f *Feed) Push(kind, message string) model.Notification {
	now := time.Now()

	f.mu.Lock()

	// Time-derived id; bump on collision so rapid pushes stay unique
	// and monotonic.
	id := now.UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id

	n := model.Notification{
		ID:           id,
		Kind:         kind,
		Message:      message,
		CreatedLabel: now.Format("Jan 2 15:04"),
	}

	f.items = append([]model.Notification{n}, f.items...)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
	f.persistLocked()
	f.mu.Unlock()

	return n
}

// MarkRead flips the read flag for a matching id. Idempotent; a
// missing id is a no-op.
func (f *Feed) MarkRead(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := false
	for i := range f.items {
		if f.items[i].ID == id && !f.items[i].Read {
			f.items[i].Read = true
			changed = true
		}
	}
	if changed {
		f.persistLocked()
	}
}

// MarkAllRead flips the read flag on every notification.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := false
	for i := range f.items {
		if !f.items[i].Read {
			f.items[i].Read = true
			changed = true
		}
	}
	if changed {
		f.persistLocked()
	}
}

// All returns a copy of the feed, newest first.
func (f *Feed) All() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyLocked()
}

// UnreadCount returns the number of unread notifications.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, n := range f.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// copyLocked returns a copy of the feed; f.mu must be held.
func (f *Feed) copyLocked() []model.Notification {
	out := make([]model.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// persistLocked writes the current feed through the store; f.mu must
// be held, which serializes persists in mutation order.
func (f *Feed) persistLocked() {
	if err := f.store.SaveFeed(context.Background(), f.copyLocked()); err != nil {
		logging.Logger().Error("persisting notification feed", "err", err)
	}
}
