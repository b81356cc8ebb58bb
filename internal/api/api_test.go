package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/presentos/present-cli/internal/model"
)

func TestDecodeListMissingKey(t *testing.T) {
	env := envelope{}
	items := decodeList[model.Task](env, "tasks")
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestDecodeListMalformedField(t *testing.T) {
	env := envelope{
		"tasks": json.RawMessage(`"not an array"`),
	}
	items := decodeList[model.Task](env, "tasks")
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestDecodeListNullField(t *testing.T) {
	env := envelope{
		"tasks": json.RawMessage(`null`),
	}
	items := decodeList[model.Task](env, "tasks")
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestDecodeListValid(t *testing.T) {
	env := envelope{
		"tasks": json.RawMessage(`[{"id": "t1", "title": "A"}, {"id": "t2", "title": "B"}]`),
	}
	items := decodeList[model.Task](env, "tasks")
	require.Len(t, items, 2)
	require.Equal(t, "t1", items[0].ID)
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clean passthrough", "nothing to fix", "nothing to fix"},
		{"bullet", "â€¢ item", "• item"},
		{"ellipsis", "waitâ€¦", "wait…"},
		{"right single quote", "donâ€™t", "don't"},
		{"left double quote", "â€œquoted", "“quoted"},
		{"bare right double quote", "quotedâ€", "quoted”"},
		{"en dash", "9â€“5", "9–5"},
		{"middle dot", "a Â· b", "a · b"},
		{"mixed", "â€œdonâ€™t waitâ€¦â€", "“don't wait…”"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestGetTasksCleansTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks", r.URL.Path)
		require.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"tasks": [{"id": "t1", "title": "Reviewâ€¦ draft"}]}`))
	}))
	defer srv.Close()

	tasks, err := NewClient(srv.URL).GetTasks(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Review… draft", tasks[0].Title)
}

func TestGetAvatarsDecodesBackendPayload(t *testing.T) {
	// Field names as the XP agent emits them.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/xp/avatars", r.URL.Path)
		w.Write([]byte(`{"avatars": [
			{"avatar": "Producer", "level": 3, "total_xp": 320, "xp_in_level": 20, "xp_to_next_level": 80, "progress_percent": 20.0, "color": "red"},
			{"avatar": "Integrator", "level": 1, "total_xp": 40, "xp_in_level": 40, "xp_to_next_level": 60, "progress_percent": 40.0, "color": "green"}
		]}`))
	}))
	defer srv.Close()

	avatars, err := NewClient(srv.URL).GetAvatars(context.Background())
	require.NoError(t, err)
	require.Len(t, avatars, 2)
	require.Equal(t, "Producer", avatars[0].Name)
	require.Equal(t, 3, avatars[0].Level)
	require.Equal(t, 320, avatars[0].TotalXP)
	require.Equal(t, 20, avatars[0].XPInLevel)
	require.Equal(t, 80, avatars[0].XPToNext)
	require.InDelta(t, 20.0, avatars[0].ProgressPercent, 0.001)
	require.Equal(t, "red", avatars[0].Color)
}

func TestGetTodayEventsDecodesTimes(t *testing.T) {
	// Field names as the calendar agent emits them.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/today", r.URL.Path)
		w.Write([]byte(`{"events": [
			{"id": "e1", "title": "Standup", "start": "2026-08-23T09:30:00Z", "end": "2026-08-23T09:45:00Z", "location": "Room 2", "description": ""}
		]}`))
	}))
	defer srv.Close()

	events, err := NewClient(srv.URL).GetTodayEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "2026-08-23T09:30:00Z", events[0].StartTime)
	require.Equal(t, "2026-08-23T09:45:00Z", events[0].EndTime)
}

func TestRetryOn429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"unread_count": 7}`))
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL).GetUnreadCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, int32(2), calls.Load())
}

func TestMaxRetriesExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetUnreadCount(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "max retries")
}

func TestErrorEnvelopeDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "task agent unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTasks(context.Background(), 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "task agent unavailable")
}

func TestProcessRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/process", r.URL.Path)

		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Add contact John", req.Query)

		w.Write([]byte(`{"success": true, "response": "Contact added", "agents": ["contact"]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Process(context.Background(), "Add contact John")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, []string{"contact"}, resp.Agents)
	require.Equal(t, "Contact added", resp.Response)
}

func TestGroqChatRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/groq/chat", r.URL.Path)

		var req struct {
			Message string      `json:"message"`
			Context ChatContext `json:"context"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "plan my day", req.Message)
		require.Equal(t, 4, req.Context.TaskBacklog)
		require.Equal(t, "Rain", req.Context.Weather)

		w.Write([]byte(`{"success": true, "response": "Start with P1s", "model": "llama-3.3-70b", "tokens_used": 51}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).GroqChat(context.Background(), "plan my day", ChatContext{
		TaskBacklog:    4,
		EnergyLevel:    60,
		Weather:        "Rain",
		UpcomingEvents: 2,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "llama-3.3-70b", resp.Model)
	require.Equal(t, 51, resp.TokensUsed)
}
