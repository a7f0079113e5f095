// Package refresh signals "collection changed" events from mutating forms to
// the list views that must refetch.
//
// A Coordinator is owned by the page that hosts both the mutation and the
// lists. Lists subscribe once and refetch on every delivered event; nothing
// is shared between them except the event itself.
package refresh

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event is delivered to subscribers after every Bump.
type Event struct {
	Version uint64
	Reason  string
}

// Handler reacts to an event, typically by refetching a collection.
type Handler func(ctx context.Context, ev Event)

type subscription struct {
	id      int
	handler Handler
}

type Coordinator struct {
	logger *zap.Logger

	mu      sync.Mutex
	version uint64
	nextID  int
	subs    []subscription
}

func New(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{logger: logger}
}

// Version returns the current value. It starts at zero.
func (c *Coordinator) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Subscribe registers h and returns a function that removes it.
// The current version is not replayed: mount-time fetching is the caller's job.
func (c *Coordinator) Subscribe(h Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, handler: h})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Bump increments the version by one and delivers the event to every
// subscriber in subscription order. Handlers run on the caller's goroutine,
// so Bump returns only after every dependent refetch has finished.
func (c *Coordinator) Bump(ctx context.Context, reason string) Event {
	c.mu.Lock()
	c.version++
	ev := Event{Version: c.version, Reason: reason}
	handlers := make([]Handler, 0, len(c.subs))
	for _, s := range c.subs {
		handlers = append(handlers, s.handler)
	}
	c.mu.Unlock()

	c.logger.Debug("refresh signal",
		zap.Uint64("version", ev.Version),
		zap.String("reason", reason),
		zap.Int("subscribers", len(handlers)),
	)

	for _, h := range handlers {
		h(ctx, ev)
	}

	return ev
}
