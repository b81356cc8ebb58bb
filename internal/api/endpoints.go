package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/presentos/present-cli/internal/model"
)

// envelope is the loose one-field-per-collection wrapper every list
// endpoint returns, e.g. {"tasks": [...], "count": 3}.
type envelope map[string]json.RawMessage

// decodeList extracts a named array field from an envelope. A missing
// or malformed field yields an empty slice, never an error: a stale or
// partial backend response must not take the whole refresh down.
func decodeList[T any](env envelope, key string) []T {
	raw, ok := env[key]
	if !ok {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// GetContext fetches the backend's system context snapshot.
func (c *Client) GetContext(ctx context.Context) (model.SystemContext, error) {
	var sc model.SystemContext
	if err := c.Get(ctx, "/context", &sc); err != nil {
		return model.SystemContext{}, fmt.Errorf("fetching context: %w", err)
	}
	return sc, nil
}

// GetAvatars fetches XP progress for all avatars.
func (c *Client) GetAvatars(ctx context.Context) ([]model.AvatarProgress, error) {
	var env envelope
	if err := c.Get(ctx, "/xp/avatars", &env); err != nil {
		return nil, fmt.Errorf("fetching avatars: %w", err)
	}
	return decodeList[model.AvatarProgress](env, "avatars"), nil
}

// GetTasks fetches up to limit tasks.
func (c *Client) GetTasks(ctx context.Context, limit int) ([]model.Task, error) {
	var env envelope
	path := fmt.Sprintf("/tasks?limit=%d", limit)
	if err := c.Get(ctx, path, &env); err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	tasks := decodeList[model.Task](env, "tasks")
	for i := range tasks {
		tasks[i].Title = CleanText(tasks[i].Title)
	}
	return tasks, nil
}

// GetTodayEvents fetches today's calendar events.
func (c *Client) GetTodayEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	var env envelope
	if err := c.Get(ctx, "/calendar/today", &env); err != nil {
		return nil, fmt.Errorf("fetching today's events: %w", err)
	}
	events := decodeList[model.CalendarEvent](env, "events")
	for i := range events {
		events[i].Title = CleanText(events[i].Title)
		events[i].Description = CleanText(events[i].Description)
	}
	return events, nil
}

// GetCurrentWeather fetches the current weather reading.
func (c *Client) GetCurrentWeather(ctx context.Context) (model.Weather, error) {
	var w model.Weather
	if err := c.Get(ctx, "/weather/current", &w); err != nil {
		return model.Weather{}, fmt.Errorf("fetching weather: %w", err)
	}
	return w, nil
}

// GetRecentEmails fetches up to maxResults recent emails.
func (c *Client) GetRecentEmails(ctx context.Context, maxResults int) ([]model.Email, error) {
	var env envelope
	path := fmt.Sprintf("/email/recent?max_results=%d", maxResults)
	if err := c.Get(ctx, path, &env); err != nil {
		return nil, fmt.Errorf("fetching recent emails: %w", err)
	}
	emails := decodeList[model.Email](env, "emails")
	for i := range emails {
		emails[i].Subject = CleanText(emails[i].Subject)
		emails[i].Snippet = CleanText(emails[i].Snippet)
	}
	return emails, nil
}

// GetContacts fetches all contacts.
func (c *Client) GetContacts(ctx context.Context) ([]model.Contact, error) {
	var env envelope
	if err := c.Get(ctx, "/contacts", &env); err != nil {
		return nil, fmt.Errorf("fetching contacts: %w", err)
	}
	contacts := decodeList[model.Contact](env, "contacts")
	for i := range contacts {
		contacts[i].Notes = CleanText(contacts[i].Notes)
	}
	return contacts, nil
}

// GetUnreadCount fetches the unread-email counter, the only
// backend-side activity signal the client polls while authenticated.
func (c *Client) GetUnreadCount(ctx context.Context) (int, error) {
	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.Get(ctx, "/email/unread", &out); err != nil {
		return 0, fmt.Errorf("fetching unread count: %w", err)
	}
	return out.UnreadCount, nil
}

// ProcessResponse is the agent router's reply to a dispatched command.
type ProcessResponse struct {
	Response string   `json:"response"`
	Agents   []string `json:"agents"`
	Error    string   `json:"error"`
	Success  bool     `json:"success"`
}

// Process submits one free-text command to the agent router.
func (c *Client) Process(ctx context.Context, query string) (*ProcessResponse, error) {
	req := struct {
		Query string `json:"query"`
	}{Query: query}

	var resp ProcessResponse
	if err := c.Post(ctx, "/process", req, &resp); err != nil {
		return nil, fmt.Errorf("processing command: %w", err)
	}
	resp.Response = CleanText(resp.Response)
	return &resp, nil
}

// ChatContext is the context snapshot sent along with a chat message.
type ChatContext struct {
	TaskBacklog    int    `json:"task_backlog"`
	EnergyLevel    int    `json:"energy_level"`
	Weather        string `json:"weather"`
	UpcomingEvents int    `json:"upcoming_events"`
}

// ChatResponse is the Groq assistant's reply.
type ChatResponse struct {
	Success    bool   `json:"success"`
	Response   string `json:"response"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
	Error      string `json:"error"`
}

// GroqChat sends one chat turn with its context snapshot.
func (c *Client) GroqChat(
	ctx context.Context,
	message string,
	chatCtx ChatContext,
) (*ChatResponse, error) {
	req := struct {
		Message string      `json:"message"`
		Context ChatContext `json:"context"`
	}{Message: message, Context: chatCtx}

	var resp ChatResponse
	if err := c.Post(ctx, "/groq/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("chatting with assistant: %w", err)
	}
	resp.Response = CleanText(resp.Response)
	return &resp, nil
}
