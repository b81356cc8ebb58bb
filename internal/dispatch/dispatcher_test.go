package dispatch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presentos/present-cli/internal/agg"
	"github.com/presentos/present-cli/internal/api"
	"github.com/presentos/present-cli/internal/dispatch"
	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/tests/testutil"
)

// fakeClock collects scheduled work and fires it when the test advances
// simulated time.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) dispatch.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{due: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves simulated time forward and runs every due timer in
// deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.due <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.f()
	}
}

// routerStub fakes the /process endpoint plus the collection endpoints
// the scheduled refreshes hit.
type routerStub struct {
	processJSON   atomic.Value
	contactsCalls atomic.Int32
	tasksCalls    atomic.Int32
}

func newRouterStub() (*routerStub, *httptest.Server) {
	rs := &routerStub{}
	rs.processJSON.Store(`{"success": true, "response": "ok", "agents": []}`)

	mux := http.NewServeMux()
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rs.processJSON.Load().(string)))
	})
	mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		rs.contactsCalls.Add(1)
		w.Write([]byte(`{"contacts": [{"id": "c1", "name": "John"}]}`))
	})
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		rs.tasksCalls.Add(1)
		w.Write([]byte(`{"tasks": []}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	return rs, httptest.NewServer(mux)
}

func testConfig() *model.AppConfig {
	return &model.AppConfig{
		Backend: model.BackendConfig{TaskLimit: 100, EmailMaxResults: 10},
		Timing: model.TimingConfig{
			ContactRefreshDelayMs: 500,
			FullRefreshDelayMs:    1500,
		},
		Display: model.DisplayConfig{PageSize: 5, FeedCapacity: 20},
	}
}

func newDispatcher(t *testing.T, srvURL string, clock dispatch.Clock) (
	*dispatch.Dispatcher, *agg.Aggregator, *feed.Feed,
) {
	t.Helper()
	cfg := testConfig()
	client := api.NewClient(srvURL)
	a := agg.New(client, cfg)
	f := feed.New(testutil.NewTestStore(t), cfg.Display.FeedCapacity)
	d := dispatch.NewWithClock(client, a, f, cfg, clock)
	t.Cleanup(d.Close)
	return d, a, f
}

func messages(f *feed.Feed) []string {
	items := f.All()
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.Message
	}
	return out
}

func TestSubmitActivationNotifications(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": true, "response": "Contact John added to your address book", "agents": ["task", "contact"]}`)

	clock := &fakeClock{}
	d, _, f := newDispatcher(t, srv.URL, clock)

	res := d.Submit(context.Background(), "Add contact John")

	require.Empty(t, res.ErrorMessage)
	require.Equal(t, []string{"task", "contact"}, res.AgentsInvolved)
	require.Equal(t, "Contact John added to your address book", res.ResponseText)

	// Both activation notifications are visible before any timer fires,
	// newest first.
	require.Equal(t, []string{
		"✓ contact Agent activated",
		"✓ task Agent activated",
	}, messages(f))
}

func TestContactRefreshAfterDelay(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": true, "response": "done", "agents": ["contact"]}`)

	clock := &fakeClock{}
	d, a, f := newDispatcher(t, srv.URL, clock)

	d.Submit(context.Background(), "Add contact John")
	require.Zero(t, rs.contactsCalls.Load())

	// Just before the contact window nothing has happened.
	clock.Advance(499 * time.Millisecond)
	require.Zero(t, rs.contactsCalls.Load())

	clock.Advance(1 * time.Millisecond)
	require.Equal(t, int32(1), rs.contactsCalls.Load())
	require.Equal(t, 1, a.Contacts.Len())
	require.Contains(t, messages(f), "✓ Contacts updated")
}

func TestFullRefreshAfterDelay(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": true, "response": "done", "agents": ["task"]}`)

	clock := &fakeClock{}
	d, _, _ := newDispatcher(t, srv.URL, clock)

	d.Submit(context.Background(), "Complete the report task")
	require.Zero(t, rs.tasksCalls.Load())

	clock.Advance(1499 * time.Millisecond)
	require.Zero(t, rs.tasksCalls.Load())

	clock.Advance(1 * time.Millisecond)
	require.Equal(t, int32(1), rs.tasksCalls.Load())
	// No contact agent fired, so no contact-specific refresh happened.
	require.Equal(t, int32(1), rs.contactsCalls.Load()) // part of the full refresh
}

func TestNoContactRefreshWithoutContactAgent(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": true, "response": "done", "agents": ["task"]}`)

	clock := &fakeClock{}
	d, _, f := newDispatcher(t, srv.URL, clock)

	d.Submit(context.Background(), "Complete the report task")

	clock.Advance(600 * time.Millisecond)
	require.Zero(t, rs.contactsCalls.Load())
	require.NotContains(t, messages(f), "✓ Contacts updated")
}

func TestSubmitBackendError(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": false, "response": "", "agents": [], "error": "router overloaded"}`)

	clock := &fakeClock{}
	d, _, f := newDispatcher(t, srv.URL, clock)

	res := d.Submit(context.Background(), "do something")

	require.Equal(t, "router overloaded", res.ErrorMessage)
	require.Contains(t, messages(f), "Command failed: router overloaded")

	// A failed command schedules no refreshes.
	clock.Advance(5 * time.Second)
	require.Zero(t, rs.contactsCalls.Load())
	require.Zero(t, rs.tasksCalls.Load())
}

func TestSubmitTransportError(t *testing.T) {
	clock := &fakeClock{}
	// Point at a closed server.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d, _, f := newDispatcher(t, url, clock)

	res := d.Submit(context.Background(), "anything")
	require.NotEmpty(t, res.ErrorMessage)

	msgs := messages(f)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "Command failed:")
}

func TestCloseCancelsPendingRefreshes(t *testing.T) {
	rs, srv := newRouterStub()
	defer srv.Close()
	rs.processJSON.Store(`{"success": true, "response": "done", "agents": ["contact"]}`)

	clock := &fakeClock{}
	d, _, _ := newDispatcher(t, srv.URL, clock)

	d.Submit(context.Background(), "Add contact John")
	d.Close()

	clock.Advance(5 * time.Second)
	require.Zero(t, rs.contactsCalls.Load())
	require.Zero(t, rs.tasksCalls.Load())
}
