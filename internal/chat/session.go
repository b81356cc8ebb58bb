// Package chat maintains the persisted multi-turn transcript with the
// Groq assistant.
package chat

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
	"github.com/presentos/present-cli/internal/store"
)

// Session owns the chat transcript. The user turn is appended and
// persisted before the assistant call goes out, so the user always
// sees their own message; a failed call leaves that turn dangling
// without an answer, which is the documented recovery behavior.
type Session struct {
	client *api.Client
	agg    *agg.Aggregator
	feed   *feed.Feed
	store  store.Store

	mu       sync.Mutex
	messages []model.ChatMessage
}

// New creates a chat session backed by the given store.
func New(
	client *api.Client,
	aggregator *agg.Aggregator,
	f *feed.Feed,
	s store.Store,
) *Session {
	return &Session{
		client: client,
		agg:    aggregator,
		feed:   f,
		store:  s,
	}
}

// Load replaces the in-memory transcript with the persisted one.
func (s *Session) Load(ctx context.Context) error {
	msgs, err := s.store.LoadTranscript(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
	return nil
}

// Send appends the user turn, calls the assistant with a live context
// snapshot, and appends the assistant turn on success. Failures emit
// an error notification and leave the transcript with only the user
// turn; Send itself never fails.
func (s *Session) Send(ctx context.Context, messageText string) {
	s.append(model.ChatMessage{
		Role:      model.RoleUser,
		Content:   messageText,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	// Snapshot is read at call time, not cached: the assistant should
	// see the backlog and weather the user currently sees.
	snapshot := s.agg.ChatSnapshot()

	resp, err := s.client.GroqChat(ctx, messageText, snapshot)
	if err != nil {
		logging.Logger().Error("chat request failed", "err", err)
		s.feed.Push(model.KindGroq, fmt.Sprintf("Assistant unavailable: %v", err))
		return
	}

	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "assistant returned no response"
		}
		s.feed.Push(model.KindGroq, fmt.Sprintf("Assistant error: %s", reason))
		return
	}

	s.append(model.ChatMessage{
		Role:       model.RoleAssistant,
		Content:    resp.Response,
		Timestamp:  time.Now().Format(time.RFC3339),
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
	})
	s.feed.Push(model.KindGroq, "Assistant replied")
}

// Clear empties the transcript, removes the persisted record, and
// emits an informational notification.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()

	if err := s.store.DeleteTranscript(ctx); err != nil {
		logging.Logger().Error("deleting transcript", "err", err)
	}
	s.feed.Push(model.KindGroq, "Conversation cleared")
}

// Messages returns a copy of the transcript in insertion order.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of transcript turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// append adds one turn and persists the whole transcript.
func (s *Session) append(msg model.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	snapshot := make([]model.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	if err := s.store.SaveTranscript(context.Background(), snapshot); err != nil {
		logging.Logger().Error("persisting transcript", "err", err)
	}
}
