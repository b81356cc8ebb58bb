package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/tests/testutil"
)

func TestFeedRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	items := []model.Notification{
		{ID: 3, Kind: "system", Message: "newest", CreatedLabel: "Jan 2 15:04"},
		{ID: 2, Kind: "task", Message: "middle", CreatedLabel: "Jan 2 15:03", Read: true},
		{ID: 1, Kind: "groq", Message: "oldest", CreatedLabel: "Jan 2 15:02"},
	}
	require.NoError(t, s.SaveFeed(ctx, items))

	got, err := s.LoadFeed(ctx)
	require.NoError(t, err)
	require.Equal(t, items, got)
}

func TestSaveFeedReplacesWholesale(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := []model.Notification{
		{ID: 1, Kind: "system", Message: "a"},
		{ID: 2, Kind: "system", Message: "b"},
	}
	require.NoError(t, s.SaveFeed(ctx, first))

	second := []model.Notification{
		{ID: 5, Kind: "contact", Message: "only"},
	}
	require.NoError(t, s.SaveFeed(ctx, second))

	got, err := s.LoadFeed(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(5), got[0].ID)
}

func TestLoadFeedEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.LoadFeed(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTranscriptRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	msgs := []model.ChatMessage{
		{Role: model.RoleUser, Content: "hello", Timestamp: "2026-08-23T10:00:00Z"},
		{
			Role:       model.RoleAssistant,
			Content:    "hi there",
			Timestamp:  "2026-08-23T10:00:02Z",
			Model:      "llama-3.3-70b",
			TokensUsed: 42,
		},
	}
	require.NoError(t, s.SaveTranscript(ctx, msgs))

	got, err := s.LoadTranscript(ctx)
	require.NoError(t, err)
	require.Equal(t, msgs, got)
}

func TestDeleteTranscript(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	msgs := []model.ChatMessage{
		{Role: model.RoleUser, Content: "hello"},
	}
	require.NoError(t, s.SaveTranscript(ctx, msgs))
	require.NoError(t, s.DeleteTranscript(ctx))

	got, err := s.LoadTranscript(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSessionLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// No session yet.
	got, err := s.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	sess := model.Session{
		ID:          "abc-123",
		Email:       "user@example.com",
		DisplayName: "User",
		CreatedAt:   time.Now().Truncate(time.Second),
	}
	require.NoError(t, s.SaveSession(ctx, sess))

	got, err = s.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sess.ID, got.ID)
	require.Equal(t, sess.Email, got.Email)
	require.Equal(t, sess.DisplayName, got.DisplayName)

	require.NoError(t, s.DeleteSession(ctx))

	got, err = s.GetSession(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSaveSessionReplacesExisting(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, model.Session{ID: "one", Email: "a@b.c"}))
	require.NoError(t, s.SaveSession(ctx, model.Session{ID: "two", Email: "d@e.f"}))

	got, err := s.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "two", got.ID)
}
