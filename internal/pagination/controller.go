package pagination

// Controller keeps the current page for one list. It is not safe for
// concurrent use: it belongs to the single component that owns the list.
type Controller[T any] struct {
	items   []T
	size    int
	current int
}

// NewController returns a controller on page 1. A non-positive size falls back to DefaultPageSize.
func NewController[T any](size int) *Controller[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Controller[T]{size: size, current: 1}
}

// SetItems replaces the backing collection and clamps the current page to max(1, TotalPages).
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.clamp()
}

func (c *Controller[T]) clamp() {
	total := c.TotalPages()
	if c.current > total {
		c.current = total
	}
	if c.current < 1 {
		c.current = 1
	}
}

// SetPage moves to page p. Out of range pages are ignored and false is returned.
func (c *Controller[T]) SetPage(p int) bool {
	if p < 1 || p > c.TotalPages() {
		return false
	}
	c.current = p
	return true
}

func (c *Controller[T]) Next() bool { return c.SetPage(c.current + 1) }

func (c *Controller[T]) Prev() bool { return c.SetPage(c.current - 1) }

// Reset returns to the first page.
func (c *Controller[T]) Reset() { c.current = 1 }

func (c *Controller[T]) CurrentPage() int { return c.current }

func (c *Controller[T]) PageSize() int { return c.size }

func (c *Controller[T]) Len() int { return len(c.items) }

func (c *Controller[T]) TotalPages() int { return TotalPages(len(c.items), c.size) }

// Pages returns 1..TotalPages.
func (c *Controller[T]) Pages() []int { return Pages(c.TotalPages()) }

func (c *Controller[T]) Window() Window[T] {
	return Window[T]{
		Items:       Slice(c.items, c.size, c.current),
		CurrentPage: c.current,
		TotalPages:  c.TotalPages(),
		PageSize:    c.size,
	}
}
