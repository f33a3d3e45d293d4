package state

import "strings"

// Collection holds the authoritative fetched list for one entity screen plus
// the derived filtered/paginated view. The source slice is never mutated by
// filtering or paging; both are recomputed from it and the current term.
// Mutations address items by key, never by position.
type Collection[T any] struct {
	key   func(T) string
	match func(T, string) bool

	items    []T
	term     string
	page     int
	pageSize int

	Loading bool
	Err     error
}

func NewCollection[T any](key func(T) string, match func(T, string) bool, pageSize int) *Collection[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Collection[T]{key: key, match: match, page: 1, pageSize: pageSize}
}

// Replace installs a freshly fetched list as the source of truth.
func (c *Collection[T]) Replace(items []T) {
	c.items = items
	c.Err = nil
	c.clampPage()
}

func (c *Collection[T]) Items() []T { return c.items }

func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) Term() string { return c.term }

// Search updates the free-text term; any change resets to the first page.
// An empty term restores the full unfiltered view.
func (c *Collection[T]) Search(term string) {
	if c.term == term {
		return
	}
	c.term = term
	c.page = 1
}

// Filtered is the pure derivation: case-insensitive substring match over the
// entity's display fields.
func (c *Collection[T]) Filtered() []T {
	term := strings.ToLower(strings.TrimSpace(c.term))
	if term == "" {
		return c.items
	}
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) Page() int { return c.page }

func (c *Collection[T]) PageSize() int { return c.pageSize }

func (c *Collection[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := c.TotalPages(); page > max {
		page = max
	}
	c.page = page
}

func (c *Collection[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	c.pageSize = size
	c.clampPage()
}

func (c *Collection[T]) TotalPages() int {
	n := len(c.Filtered())
	if n == 0 {
		return 1
	}
	return (n + c.pageSize - 1) / c.pageSize
}

// PageItems slices the filtered view for the current page.
func (c *Collection[T]) PageItems() []T {
	filtered := c.Filtered()
	start := (c.page - 1) * c.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Upsert merges a confirmed record by key: in-place replace when present,
// append when new (additions land only after the backend echoes them).
func (c *Collection[T]) Upsert(item T) {
	k := c.key(item)
	for i := range c.items {
		if c.key(c.items[i]) == k {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
	c.clampPage()
}

func (c *Collection[T]) Remove(key string) bool {
	for i := range c.items {
		if c.key(c.items[i]) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.clampPage()
			return true
		}
	}
	return false
}

func (c *Collection[T]) Get(key string) (T, bool) {
	for i := range c.items {
		if c.key(c.items[i]) == key {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) clampPage() {
	if max := c.TotalPages(); c.page > max {
		c.page = max
	}
	if c.page < 1 {
		c.page = 1
	}
}
