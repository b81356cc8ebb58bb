// Package agg fetches the backend resource collections and exposes
// their pagination state to the views.
package agg

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/presentos/present-cli/internal/api"
	"github.com/presentos/present-cli/internal/logging"
	"github.com/presentos/present-cli/internal/model"
)

// Aggregator owns the read-only client copies of every backend
// collection. Collections are refreshed as one concurrent batch; a
// failed sub-fetch keeps the previous items, since a stale-but-present
// read beats an empty state. There is no retry policy: failures are
// logged and the last-known collection stays on screen.
type Aggregator struct {
	client *api.Client
	cfg    *model.AppConfig

	Tasks    *Collection[model.Task]
	Events   *Collection[model.CalendarEvent]
	Emails   *Collection[model.Email]
	Contacts *Collection[model.Contact]
	Avatars  *Collection[model.AvatarProgress]

	mu      sync.Mutex
	weather model.Weather
	sysCtx  model.SystemContext
}

// New creates an aggregator over the given backend client.
func New(client *api.Client, cfg *model.AppConfig) *Aggregator {
	pageSize := cfg.Display.PageSize
	return &Aggregator{
		client:   client,
		cfg:      cfg,
		Tasks:    NewCollection[model.Task](pageSize),
		Events:   NewCollection[model.CalendarEvent](pageSize),
		Emails:   NewCollection[model.Email](pageSize),
		Contacts: NewCollection[model.Contact](pageSize),
		Avatars:  NewCollection[model.AvatarProgress](pageSize),
	}
}

// RefreshAll fetches every collection concurrently and returns when
// the whole batch has resolved. Individual failures never abort the
// batch; each sub-fetch handles its own error by logging and keeping
// the collection's previous state.
func (a *Aggregator) RefreshAll(ctx context.Context) {
	log := logging.Logger()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sc, err := a.client.GetContext(ctx)
		if err != nil {
			log.Warn("refreshing system context", "err", err)
			return nil
		}
		a.mu.Lock()
		a.sysCtx = sc
		a.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		avatars, err := a.client.GetAvatars(ctx)
		if err != nil {
			log.Warn("refreshing avatars", "err", err)
			return nil
		}
		a.Avatars.Replace(avatars)
		return nil
	})

	g.Go(func() error {
		tasks, err := a.client.GetTasks(ctx, a.cfg.Backend.TaskLimit)
		if err != nil {
			log.Warn("refreshing tasks", "err", err)
			return nil
		}
		a.Tasks.Replace(tasks)
		return nil
	})

	g.Go(func() error {
		events, err := a.client.GetTodayEvents(ctx)
		if err != nil {
			log.Warn("refreshing events", "err", err)
			return nil
		}
		a.Events.Replace(events)
		return nil
	})

	g.Go(func() error {
		w, err := a.client.GetCurrentWeather(ctx)
		if err != nil {
			log.Warn("refreshing weather", "err", err)
			return nil
		}
		a.mu.Lock()
		a.weather = w
		a.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		emails, err := a.client.GetRecentEmails(ctx, a.cfg.Backend.EmailMaxResults)
		if err != nil {
			log.Warn("refreshing emails", "err", err)
			return nil
		}
		a.Emails.Replace(emails)
		return nil
	})

	g.Go(func() error {
		return a.refreshContacts(ctx)
	})

	// Sub-fetches swallow their own errors, so this only waits.
	_ = g.Wait()
}

// RefreshContacts re-fetches only the contact collection. It runs on
// its own delay after a contact-mutating command, decoupled from the
// full batch.
func (a *Aggregator) RefreshContacts(ctx context.Context) error {
	return a.refreshContacts(ctx)
}

func (a *Aggregator) refreshContacts(ctx context.Context) error {
	contacts, err := a.client.GetContacts(ctx)
	if err != nil {
		logging.Logger().Warn("refreshing contacts", "err", err)
		return nil
	}
	a.Contacts.Replace(contacts)
	return nil
}

// Weather returns the last fetched weather reading.
func (a *Aggregator) Weather() model.Weather {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weather
}

// SystemContext returns the last fetched system context.
func (a *Aggregator) SystemContext() model.SystemContext {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sysCtx
}

// ChatSnapshot builds the context snapshot sent with every chat turn,
// read live from the current collection state.
func (a *Aggregator) ChatSnapshot() api.ChatContext {
	a.mu.Lock()
	energy := a.sysCtx.EnergyLevel
	condition := a.weather.Condition
	a.mu.Unlock()

	return api.ChatContext{
		TaskBacklog:    a.Tasks.Len(),
		EnergyLevel:    energy,
		Weather:        condition,
		UpcomingEvents: a.Events.Len(),
	}
}
