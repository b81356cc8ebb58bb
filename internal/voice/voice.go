// Package voice wraps the platform speech-recognition capability
// behind a start/stop contract shared by the command and chat inputs.
package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/logging"
	"github.com/presentos/present-cli/internal/model"
)

// Capture errors.
var (
	// ErrUnavailable means the platform has no speech capability;
	// reported once per attempt, never retried automatically.
	ErrUnavailable = errors.New("voice capture unavailable")

	// ErrBusy means a capture session is already listening. Only one
	// session may be active at a time.
	ErrBusy = errors.New("voice capture already listening")
)

// Target selects which text input receives the transcript.
type Target int

const (
	// TargetCommand routes the transcript to the command input.
	TargetCommand Target = iota

	// TargetChat routes the transcript to the chat input.
	TargetChat
)

// State is the adapter's capture state.
type State int

const (
	Idle State = iota
	Listening
)

// Recognizer is one platform capture session source. Listen performs a
// single non-continuous, non-interim capture in the given locale and
// blocks until a final transcript, an error, or context cancellation.
type Recognizer interface {
	Available() bool
	Listen(ctx context.Context, locale string) (string, error)
}

// Adapter is the two-state (Idle/Listening) capture front end. The
// transcript is routed to whichever input the caller named when
// starting the session.
type Adapter struct {
	rec    Recognizer
	feed   *feed.Feed
	route  func(Target, string)
	locale string

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// New creates an adapter. The route callback delivers final
// transcripts to the owning view.
func New(
	rec Recognizer,
	f *feed.Feed,
	locale string,
	route func(Target, string),
) *Adapter {
	return &Adapter{
		rec:    rec,
		feed:   f,
		route:  route,
		locale: locale,
	}
}

// State returns the current capture state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Start begins one capture session for the given target. It fails fast
// with no state change when the capability is absent, and is a no-op
// (ErrBusy) when a session is already listening.
func (a *Adapter) Start(target Target) error {
	if !a.rec.Available() {
		a.feed.Push(model.KindSystem, "Voice input is not available on this system")
		return ErrUnavailable
	}

	a.mu.Lock()
	if a.state == Listening {
		a.mu.Unlock()
		return ErrBusy
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.state = Listening
	a.cancel = cancel
	a.mu.Unlock()

	a.feed.Push(model.KindSystem, "Listening…")

	go a.listen(ctx, target)
	return nil
}

// Stop cancels an active capture session with no result. Always legal;
// a no-op when idle.
func (a *Adapter) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// listen runs one capture session and transitions back to Idle on
// every exit path.
func (a *Adapter) listen(ctx context.Context, target Target) {
	text, err := a.rec.Listen(ctx, a.locale)

	a.mu.Lock()
	a.state = Idle
	a.cancel = nil
	a.mu.Unlock()

	if err != nil {
		// Explicit Stop produces no result and no error notification.
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.Logger().Warn("voice capture failed", "err", err)
		a.feed.Push(model.KindSystem, "Voice recognition error: "+err.Error())
		return
	}

	if text == "" {
		return
	}

	a.route(target, text)
	a.feed.Push(model.KindSystem, "🎤 "+text)
}
