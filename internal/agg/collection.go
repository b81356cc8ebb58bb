package agg

import "sync"

// Collection holds one backend-owned resource list together with its
// pagination state. Items are replaced wholesale on every refresh; no
// incremental merge or client-side identity tracking happens here.
type Collection[T any] struct {
	mu       sync.Mutex
	items    []T
	page     int
	pageSize int
}

// NewCollection creates an empty collection with the given page size.
func NewCollection[T any](pageSize int) *Collection[T] {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Collection[T]{page: 1, pageSize: pageSize}
}

// Replace swaps in a new item sequence. A page left pointing past the
// end of a shorter collection resets to 1 rather than rendering an
// empty page silently.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	if c.page > c.pageCountLocked() {
		c.page = 1
	}
}

// Items returns a copy of the full item sequence.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Page returns the current 1-based page number.
func (c *Collection[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// SetPage moves to the requested page, clamped into [1, PageCount].
func (c *Collection[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	max := c.pageCountLocked()
	if page < 1 {
		page = 1
	}
	if page > max {
		page = max
	}
	c.page = page
}

// NextPage advances one page, clamped at the last page.
func (c *Collection[T]) NextPage() {
	c.SetPage(c.Page() + 1)
}

// PrevPage goes back one page, clamped at the first page.
func (c *Collection[T]) PrevPage() {
	c.SetPage(c.Page() - 1)
}

// PageCount returns the number of pages; an empty collection has one
// (empty) page so the page number stays valid.
func (c *Collection[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageCountLocked()
}

// PageItems returns the slice of items on the current page.
func (c *Collection[T]) PageItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := (c.page - 1) * c.pageSize
	if start >= len(c.items) {
		return []T{}
	}
	end := start + c.pageSize
	if end > len(c.items) {
		end = len(c.items)
	}

	out := make([]T, end-start)
	copy(out, c.items[start:end])
	return out
}

func (c *Collection[T]) pageCountLocked() int {
	if len(c.items) == 0 {
		return 1
	}
	return (len(c.items) + c.pageSize - 1) / c.pageSize
}
