// Package cache memoizes full pipeline results per source identity for a
// fixed time-to-live.
package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/cognicore/toolcat/internal/logging"
)

// DefaultTTL is how long a computed result stays fresh.
const DefaultTTL = time.Hour

// DefaultMaxSources bounds the number of distinct sources held.
const DefaultMaxSources = 16

// Options configures a Cache.
type Options struct {
	TTL        time.Duration
	MaxSources int
	Now        func() time.Time
	Logger     logging.Logger
}

type entry[V any] struct {
	value    V
	computed time.Time
}

type flightResult[V any] struct {
	entry  *entry[V]
	cached bool
}

// Cache holds at most one value per key. Expiry is checked lazily on
// Get; there is no background eviction. A published entry is never
// mutated: recomputation builds a new entry and swaps it in.
type Cache[K comparable, V any] struct {
	ttl     time.Duration
	now     func() time.Time
	log     logging.Logger
	entries *lru.Cache[K, *entry[V]]
	flight  singleflight.Group
}

// New creates a cache.
func New[K comparable, V any](opts Options) (*Cache[K, V], error) {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSources <= 0 {
		opts.MaxSources = DefaultMaxSources
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	entries, err := lru.New[K, *entry[V]](opts.MaxSources)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache[K, V]{
		ttl:     opts.TTL,
		now:     opts.Now,
		log:     logging.OrNop(opts.Logger),
		entries: entries,
	}, nil
}

// ComputeFunc produces a fresh value.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// Get returns the cached value for key while it is fresh. Otherwise it
// runs compute, publishes the result and returns it. Concurrent callers
// for the same key share one computation, which runs detached from any
// single caller's cancellation; a caller whose ctx ends stops waiting and
// gets ctx.Err(). hit is false only for the caller whose computation
// produced the value. A failed computation leaves the previous entry in
// place.
func (c *Cache[K, V]) Get(ctx context.Context, key K, compute ComputeFunc[V]) (value V, hit bool, err error) {
	if e, ok := c.fresh(key); ok {
		return e.value, true, nil
	}

	ran := false
	ch := c.flight.DoChan(fmt.Sprint(key), func() (any, error) {
		ran = true
		// Another caller may have published while we waited.
		if e, ok := c.fresh(key); ok {
			return flightResult[V]{entry: e, cached: true}, nil
		}
		start := c.now()
		val, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		e := &entry[V]{value: val, computed: start}
		c.entries.Add(key, e)
		c.log.Info("cache recomputed", logging.String("key", fmt.Sprint(key)))
		return flightResult[V]{entry: e}, nil
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			var zero V
			return zero, false, r.Err
		}
		res := r.Val.(flightResult[V])
		return res.entry.value, !ran || res.cached, nil
	}
}

// Peek returns a fresh value without computing.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if e, ok := c.fresh(key); ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Invalidate drops the entry for key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.entries.Remove(key)
}

// Len returns the number of entries held, fresh or not.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

func (c *Cache[K, V]) fresh(key K) (*entry[V], bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.computed) >= c.ttl {
		return nil, false
	}
	return e, true
}
