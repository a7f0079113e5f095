// Package listview binds one remote collection to one page controller and
// keeps them fresh through a refresh coordinator.
package listview

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/pagination"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/refresh"
	"github.com/spigell/hire-assistant/internal/resource"
)

// Messages are the user-facing texts of one list.
type Messages struct {
	FetchFailed  string
	DeleteFailed string
	Confirm      string
	Empty        string
}

type Options struct {
	PageSize int
	Messages Messages
}

// State is what a list renders.
type State[T any] struct {
	Window  pagination.Window[T]
	Loading bool
	Error   string
	Empty   string
}

// ListView exclusively owns its collection and controller.
type ListView[T any] struct {
	logger      *zap.Logger
	collection  *resource.Collection[T]
	coordinator *refresh.Coordinator
	messages    Messages

	mu          sync.Mutex
	pager       *pagination.Controller[T]
	tracker     refresh.Tracker
	applied     uint64
	message     string
	unsubscribe func()
}

func New[T any](name string, source resource.Source[T], coordinator *refresh.Coordinator, log *zap.Logger, opts Options) *ListView[T] {
	if log == nil {
		log = zap.NewNop()
	}

	return &ListView[T]{
		logger:      log,
		collection:  resource.NewCollection(name, source, log),
		coordinator: coordinator,
		messages:    opts.Messages,
		pager:       pagination.NewController[T](opts.PageSize),
	}
}

// Mount does the initial fetch and starts listening for refresh events.
func (l *ListView[T]) Mount(ctx context.Context) error {
	l.mu.Lock()
	if l.unsubscribe == nil && l.coordinator != nil {
		l.unsubscribe = l.coordinator.Subscribe(l.onRefresh)
	}
	l.mu.Unlock()

	return l.Refresh(ctx)
}

func (l *ListView[T]) onRefresh(ctx context.Context, ev refresh.Event) {
	if !l.tracker.Observe(ev.Version) {
		return
	}

	if err := l.Refresh(ctx); err != nil && !errors.Is(err, resource.ErrStale) {
		l.logger.Debug("refetch after change failed",
			zap.Uint64("version", ev.Version),
			zap.String("reason", ev.Reason),
			zap.Error(err),
		)
	}
}

// Refresh refetches the collection and re-derives the visible page.
func (l *ListView[T]) Refresh(ctx context.Context) error {
	snap, err := l.collection.Refresh(ctx)
	if errors.Is(err, resource.ErrStale) {
		return err
	}

	return l.apply(snap, err)
}

// apply moves a fetched snapshot into the pager unless a newer one got there first.
func (l *ListView[T]) apply(snap resource.Snapshot[T], err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if snap.RequestID < l.applied {
		l.logger.Debug("dropping older snapshot",
			zap.Uint64("request", snap.RequestID),
			zap.Uint64("applied", l.applied),
		)
		return resource.ErrStale
	}
	l.applied = snap.RequestID

	l.pager.SetItems(snap.Items)
	if err != nil {
		l.message = recruitapi.UserMessage(err, l.messages.FetchFailed)
		return err
	}
	l.message = ""

	return nil
}

// Delete asks for confirmation, deletes id and then signals the coordinator so
// every list on the page refetches. A declined prompt changes nothing.
func (l *ListView[T]) Delete(ctx context.Context, id string, confirmer resource.Confirmer) (bool, error) {
	removed, err := l.collection.Remove(ctx, id, l.messages.Confirm, confirmer)
	if err != nil {
		l.mu.Lock()
		l.message = recruitapi.UserMessage(err, l.messages.DeleteFailed)
		l.mu.Unlock()
		return false, err
	}
	if !removed {
		return false, nil
	}

	if l.coordinator != nil {
		l.coordinator.Bump(ctx, "deleted "+l.collection.Name())
	} else if err := l.Refresh(ctx); err != nil {
		return true, err
	}

	return true, nil
}

func (l *ListView[T]) Get(ctx context.Context, id string) (T, error) {
	return l.collection.Get(ctx, id)
}

func (l *ListView[T]) SetPage(p int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager.SetPage(p)
}

func (l *ListView[T]) Pages() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager.Pages()
}

func (l *ListView[T]) Items() []T {
	return l.collection.Items()
}

func (l *ListView[T]) State() State[T] {
	snap := l.collection.Snapshot()

	l.mu.Lock()
	defer l.mu.Unlock()

	state := State[T]{
		Window:  l.pager.Window(),
		Loading: snap.Loading,
		Error:   l.message,
	}
	if snap.Loaded && state.Window.Empty() {
		state.Empty = l.messages.Empty
	}

	return state
}

// Close stops listening for refresh events.
func (l *ListView[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}
