// ABOUTME: Read-through collection cache with stale-while-revalidate refresh
// ABOUTME: Singleflight collapses concurrent fills; invalidation is manual
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cached slot counts as fresh.
const DefaultTTL = 5 * time.Minute

// FetchFunc loads a collection from the backing store.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection caches one kind of entity, sliced by a filter key (for
// contacts and companies the filter is the archived flag). Fresh hits are
// served from memory and re-fetched in the background; stale or missing
// slots block on the fetch.
type Collection[T any] struct {
	name   string
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]entry[T]
}

type entry[T any] struct {
	data      []T
	fetchedAt time.Time
}

type Option[T any] func(*Collection[T])

func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(c *Collection[T]) { c.ttl = ttl }
}

func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Collection[T]) { c.now = now }
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(c *Collection[T]) { c.logger = logger }
}

func NewCollection[T any](name string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		name:    name,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
		entries: make(map[string]entry[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the filter's slice from the cache when it is still fresh,
// kicking off a background refresh, and fetches synchronously otherwise.
// The bool reports whether the data came from the cache.
func (c *Collection[T]) Get(ctx context.Context, filter string, fetch FetchFunc[T]) ([]T, bool, error) {
	c.mu.Lock()
	e, ok := c.entries[filter]
	fresh := ok && c.now().Sub(e.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		go c.refresh(filter, fetch)
		return e.data, true, nil
	}

	data, err := c.fill(ctx, filter, fetch)
	if err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// fill fetches and stores a slot. Concurrent fills for the same filter
// share one fetch.
func (c *Collection[T]) fill(ctx context.Context, filter string, fetch FetchFunc[T]) ([]T, error) {
	v, err, _ := c.group.Do(filter, func() (interface{}, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[filter] = entry[T]{data: data, fetchedAt: c.now()}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// refresh re-fetches a slot off the request path. Failures keep the old
// entry and are only logged.
func (c *Collection[T]) refresh(filter string, fetch FetchFunc[T]) {
	if _, err := c.fill(context.Background(), filter, fetch); err != nil {
		c.logger.Warn("background refresh failed",
			zap.String("collection", c.name),
			zap.String("filter", filter),
			zap.Error(err))
	}
}

// Invalidate drops every cached slot for this collection.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()
}
