package agg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

func TestPageCount(t *testing.T) {
	c := NewCollection[string](5)

	c.Replace(makeItems(12))
	require.Equal(t, 3, c.PageCount())

	c.Replace(makeItems(10))
	require.Equal(t, 2, c.PageCount())

	c.Replace(makeItems(1))
	require.Equal(t, 1, c.PageCount())
}

func TestEmptyCollectionHasOnePage(t *testing.T) {
	c := NewCollection[string](5)

	require.Equal(t, 1, c.PageCount())
	require.Equal(t, 1, c.Page())
	require.Empty(t, c.PageItems())
}

func TestLastPageIsPartial(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(12))

	c.SetPage(3)
	items := c.PageItems()
	require.Len(t, items, 2)
	require.Equal(t, "item 10", items[0])
	require.Equal(t, "item 11", items[1])
}

func TestSetPageClamps(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(12))

	c.SetPage(99)
	require.Equal(t, 3, c.Page())

	c.SetPage(-4)
	require.Equal(t, 1, c.Page())
}

func TestNextPrevPageClamp(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(12))

	c.PrevPage()
	require.Equal(t, 1, c.Page())

	c.NextPage()
	c.NextPage()
	require.Equal(t, 3, c.Page())

	c.NextPage()
	require.Equal(t, 3, c.Page())
}

func TestReplaceResetsOutOfRangePage(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(12))
	c.SetPage(3)

	// The collection shrank under the current page; rather than show an
	// empty page the view snaps back to the first.
	c.Replace(makeItems(4))
	require.Equal(t, 1, c.Page())
}

func TestReplaceKeepsValidPage(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(12))
	c.SetPage(2)

	c.Replace(makeItems(11))
	require.Equal(t, 2, c.Page())
}

func TestPageItemsReturnsCopy(t *testing.T) {
	c := NewCollection[string](5)
	c.Replace(makeItems(5))

	items := c.PageItems()
	items[0] = "mutated"
	require.Equal(t, "item 0", c.PageItems()[0])
}

func TestZeroPageSizeFallsBack(t *testing.T) {
	c := NewCollection[string](0)
	c.Replace(makeItems(12))
	require.Equal(t, 3, c.PageCount())
}
