// Package dispatch submits free-text commands to the agent router and
// reconciles their side effects across the resource collections.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/presentos/present-cli/internal/agg"
	"github.com/presentos/present-cli/internal/api"
	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/logging"
	"github.com/presentos/present-cli/internal/model"
)

// refreshTimeout bounds the background re-fetches scheduled after a
// command; they run detached from the submitting call's context.
const refreshTimeout = 30 * time.Second

// Result is the transient outcome of one dispatched command. It is
// displayed until the next command overwrites it; nothing persists it.
type Result struct {
	// ResponseText is the router's combined reply.
	ResponseText string

	// AgentsInvolved lists the backend agents that acted, in the
	// order the router reports them.
	AgentsInvolved []string

	// ErrorMessage is set when the dispatch failed; the other fields
	// are then best-effort.
	ErrorMessage string
}

// Dispatcher sends commands to the agent router. Command effects are
// backend-side and asynchronous; with no push channel, consistency
// comes from two fixed re-fetch delays. A user can see stale data for
// up to the full-refresh delay, and an in-flight refresh from an
// earlier command may resolve after a later one starts; collections
// are replaced wholesale, so last writer wins. That tradeoff is
// deliberate.
type Dispatcher struct {
	client *api.Client
	agg    *agg.Aggregator
	feed   *feed.Feed
	cfg    *model.AppConfig
	clock  Clock

	mu     sync.Mutex
	timers []Timer
	closed bool
}

// New creates a dispatcher using the system clock.
func New(
	client *api.Client,
	aggregator *agg.Aggregator,
	f *feed.Feed,
	cfg *model.AppConfig,
) *Dispatcher {
	return NewWithClock(client, aggregator, f, cfg, SystemClock{})
}

// NewWithClock creates a dispatcher with an explicit clock.
func NewWithClock(
	client *api.Client,
	aggregator *agg.Aggregator,
	f *feed.Feed,
	cfg *model.AppConfig,
	clock Clock,
) *Dispatcher {
	return &Dispatcher{
		client: client,
		agg:    aggregator,
		feed:   f,
		cfg:    cfg,
		clock:  clock,
	}
}

// Submit sends one free-text command. It never returns an error: any
// transport or parse failure degrades to an error-shaped Result plus a
// system notification.
func (d *Dispatcher) Submit(ctx context.Context, commandText string) Result {
	resp, err := d.client.Process(ctx, commandText)
	if err != nil {
		logging.Logger().Error("dispatching command", "err", err)
		d.feed.Push(model.KindSystem, fmt.Sprintf("Command failed: %v", err))
		return Result{ErrorMessage: err.Error()}
	}

	if resp.Error != "" {
		d.feed.Push(model.KindSystem, fmt.Sprintf("Command failed: %s", resp.Error))
		return Result{
			ResponseText: resp.Response,
			ErrorMessage: resp.Error,
		}
	}

	// Activation notifications go out synchronously, in backend
	// order, before any refresh is scheduled.
	hasContact := false
	for _, agent := range resp.Agents {
		d.feed.Push(agent, fmt.Sprintf("✓ %s Agent activated", agent))
		if agent == "contact" {
			hasContact = true
		}
	}

	// Contact mutations get a dedicated early re-fetch: the contact
	// agent's writes settle faster than the general window, and users
	// expect the new contact to appear promptly.
	if hasContact {
		d.schedule(d.cfg.ContactRefreshDelay(), func() {
			rctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			if err := d.agg.RefreshContacts(rctx); err != nil {
				return
			}
			d.feed.Push("contact", "✓ Contacts updated")
		})
	}

	// The general eventual-consistency window: one full refresh after
	// every command, whichever agents fired.
	d.schedule(d.cfg.FullRefreshDelay(), func() {
		rctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		d.agg.RefreshAll(rctx)
	})

	return Result{
		ResponseText:   resp.Response,
		AgentsInvolved: resp.Agents,
	}
}

// schedule registers a cancellable delayed continuation. Nothing is
// scheduled after Close.
func (d *Dispatcher) schedule(delay time.Duration, f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.timers = append(d.timers, d.clock.AfterFunc(delay, f))
}

// Close cancels all pending delayed refreshes. Used on logout and
// shutdown so scheduled work does not outlive the session.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for _, t := range d.timers {
		t.Stop()
	}
	d.timers = nil
}
