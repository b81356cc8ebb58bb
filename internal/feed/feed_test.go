package feed_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/tests/testutil"
)

func TestPushNewestFirst(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 20)

	f.Push(model.KindSystem, "first")
	f.Push(model.KindSystem, "second")
	f.Push(model.KindSystem, "third")

	items := f.All()
	require.Len(t, items, 3)
	require.Equal(t, "third", items[0].Message)
	require.Equal(t, "second", items[1].Message)
	require.Equal(t, "first", items[2].Message)
}

func TestPushIDsUniqueAndMonotonic(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 30)

	// Rapid pushes land inside the same millisecond; ids must still be
	// unique and strictly increasing.
	var last int64
	for i := 0; i < 25; i++ {
		n := f.Push(model.KindSystem, fmt.Sprintf("msg %d", i))
		require.Greater(t, n.ID, last)
		last = n.ID
	}
}

func TestPushTruncatesToCapacity(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 20)

	for i := 0; i < 25; i++ {
		f.Push(model.KindSystem, fmt.Sprintf("msg %d", i))
	}

	items := f.All()
	require.Len(t, items, 20)
	// The newest survives; the oldest five were dropped.
	require.Equal(t, "msg 24", items[0].Message)
	require.Equal(t, "msg 5", items[19].Message)
}

func TestMarkReadIdempotent(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 20)

	n := f.Push(model.KindSystem, "hello")
	require.Equal(t, 1, f.UnreadCount())

	f.MarkRead(n.ID)
	require.Equal(t, 0, f.UnreadCount())

	// Repeats and unknown ids change nothing.
	f.MarkRead(n.ID)
	f.MarkRead(99999)
	require.Equal(t, 0, f.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 20)

	f.Push(model.KindSystem, "a")
	f.Push(model.KindGroq, "b")
	f.Push("contact", "c")
	require.Equal(t, 3, f.UnreadCount())

	f.MarkAllRead()
	require.Equal(t, 0, f.UnreadCount())
	for _, n := range f.All() {
		require.True(t, n.Read)
	}
}

func TestPersistenceAcrossLoad(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	f := feed.New(s, 20)
	f.Push(model.KindSystem, "survives")
	n := f.Push(model.KindGroq, "also survives")
	f.MarkRead(n.ID)

	// A fresh feed over the same store sees the persisted state.
	reloaded := feed.New(s, 20)
	require.NoError(t, reloaded.Load(ctx))

	items := reloaded.All()
	require.Len(t, items, 2)
	require.Equal(t, "also survives", items[0].Message)
	require.True(t, items[0].Read)
	require.Equal(t, "survives", items[1].Message)
	require.False(t, items[1].Read)

	// Ids keep increasing after a reload rather than colliding.
	next := reloaded.Push(model.KindSystem, "new")
	require.Greater(t, next.ID, n.ID)
}

func TestConcurrentPushesPersistInOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	f := feed.New(s, 50)

	// Mutations persist under the feed lock, so whichever push lands
	// last also writes last and the stored feed always matches the
	// in-memory one.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Push(model.KindSystem, fmt.Sprintf("msg %d", i))
		}(i)
	}
	wg.Wait()

	persisted, err := s.LoadFeed(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.All(), persisted)
}

func TestInvalidCapacityFallsBack(t *testing.T) {
	f := feed.New(testutil.NewTestStore(t), 0)

	for i := 0; i < feed.DefaultCapacity+5; i++ {
		f.Push(model.KindSystem, "x")
	}
	require.Len(t, f.All(), feed.DefaultCapacity)
}
