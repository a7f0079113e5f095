// Package resource keeps the client-side copy of a remote collection.
//
// A Collection tracks the loading state of the last fetch and tags every fetch
// with a request id, so a slow response can never overwrite a newer one.
// Mutations never patch the local items: callers refetch after a change.
package resource

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/logger"
)

// ErrStale is returned by Refresh when a newer refresh was issued while this one was in flight.
var ErrStale = errors.New("stale response discarded")

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Source is the remote side of a collection.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is a consistent copy of the collection state.
type Snapshot[T any] struct {
	State     State
	Items     []T
	Err       error
	Loading   bool
	Loaded    bool
	RequestID uint64
}

type Collection[T any] struct {
	name   string
	source Source[T]
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	items   []T
	err     error
	loaded  bool
	issued  uint64
	applied uint64
}

func NewCollection[T any](name string, source Source[T], log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}

	return &Collection[T]{
		name:   name,
		source: source,
		logger: logger.ForResource(log, name),
		state:  StateIdle,
	}
}

func (c *Collection[T]) Name() string { return c.name }

// Refresh fetches the whole collection. On failure the last good items are kept
// and the error is recorded. A response that lost the race to a newer refresh
// is dropped and ErrStale is returned together with the current snapshot.
func (c *Collection[T]) Refresh(ctx context.Context) (Snapshot[T], error) {
	c.mu.Lock()
	c.issued++
	id := c.issued
	c.state = StateLoading
	c.mu.Unlock()

	c.logger.Debug("fetching collection", zap.Uint64("request", id))
	items, err := c.source.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.issued {
		c.logger.Debug("dropping late response",
			zap.Uint64("request", id),
			zap.Uint64("latest", c.issued),
		)
		return c.snapshotLocked(), ErrStale
	}

	c.applied = id
	if err != nil {
		c.state = StateError
		c.err = err
		c.logger.Warn("failed to fetch collection", zap.Error(err))
		return c.snapshotLocked(), err
	}

	c.state = StateReady
	c.err = nil
	c.loaded = true
	c.items = items
	c.logger.Debug("collection fetched", zap.Int("count", len(items)))

	return c.snapshotLocked(), nil
}

// Get reads a single record from the source. The local items are not touched.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	return c.source.Get(ctx, id)
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Collection[T]) Items() []T {
	return c.Snapshot().Items
}

func (c *Collection[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)

	return Snapshot[T]{
		State:     c.state,
		Items:     items,
		Err:       c.err,
		Loading:   c.state == StateLoading,
		Loaded:    c.loaded,
		RequestID: c.applied,
	}
}
