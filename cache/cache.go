// Package cache implements the process-wide query cache: a keyed,
// read-through store over whatever fetch function a caller supplies, with
// explicit invalidation and stale-while-revalidate semantics.
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Status is the lifecycle state of a cache entry.
type Status string

const (
	// StatusFresh means the cached value may be returned without a fetch.
	StatusFresh Status = "fresh"
	// StatusStale means the value is readable but must be refetched on the
	// next read.
	StatusStale Status = "stale"
	// StatusFetching means a fetch for this identity is in flight.
	StatusFetching Status = "fetching"
	// StatusError means the last fetch failed; the error is retained and the
	// fetch is retried on the next read.
	StatusError Status = "error"
	// StatusMissing is reported for identities that have never been read.
	StatusMissing Status = "missing"
)

// Fetcher loads the value for a query identity. It is invoked at most once
// per identity at a time, no matter how many concurrent readers miss.
type Fetcher func(ctx context.Context) (interface{}, error)

// entry is the cached state for one query identity.
type entry struct {
	collection string
	value      interface{}
	status     Status
	err        error
	fetchedAt  time.Time
	pending    chan struct{} // closed when the in-flight fetch settles
	// invalidated while a fetch is in flight: the result is stored but the
	// entry lands stale so the next read refetches.
	staleOnStore bool
}

// Cache is a keyed in-memory query cache. One instance is shared per session
// and mutated only through Read, Invalidate and Reset.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Key builds the query identity for a collection name and parameter set.
// Parameters are serialized in sorted order so equal parameter sets always
// map to the same identity.
func Key(collection string, params map[string]string) string {
	if len(params) == 0 {
		return collection
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(collection)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

// Read returns the cached value for (collection, params) if the entry is
// fresh; otherwise it invokes fetch, stores the result as fresh and returns
// it. Concurrent readers of the same identity share a single in-flight fetch.
// A failed fetch marks the entry as errored and returns the error; the next
// read retries.
func (c *Cache) Read(ctx context.Context, collection string, params map[string]string, fetch Fetcher) (interface{}, error) {
	key := Key(collection, params)

	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok {
			e = &entry{collection: collection, status: StatusMissing}
			c.entries[key] = e
		}

		switch e.status {
		case StatusFresh:
			value := e.value
			c.mu.Unlock()
			return value, nil

		case StatusFetching:
			pending := e.pending
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-pending:
			}
			// Re-examine the entry: the shared fetch either stored a value
			// or recorded an error.
			c.mu.Lock()
			switch e.status {
			case StatusFresh, StatusStale:
				value := e.value
				c.mu.Unlock()
				return value, nil
			case StatusError:
				err := e.err
				c.mu.Unlock()
				return nil, err
			default:
				// Another reader already started the next fetch; loop and
				// join it.
				c.mu.Unlock()
				continue
			}

		default: // missing, stale or error: this reader leads the fetch
			e.status = StatusFetching
			e.err = nil
			e.staleOnStore = false
			e.pending = make(chan struct{})
			pending := e.pending
			c.mu.Unlock()

			value, err := fetch(ctx)

			c.mu.Lock()
			if err != nil {
				e.status = StatusError
				e.err = err
			} else {
				e.value = value
				e.fetchedAt = time.Now()
				e.err = nil
				if e.staleOnStore {
					e.status = StatusStale
				} else {
					e.status = StatusFresh
				}
			}
			e.pending = nil
			close(pending)
			c.mu.Unlock()
			return value, err
		}
	}
}

// Peek returns the stored value for an identity regardless of freshness,
// so a view can keep rendering a stale value while the next read revalidates.
func (c *Cache) Peek(collection string, params map[string]string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key(collection, params)]
	if !ok || e.fetchedAt.IsZero() {
		return nil, false
	}
	return e.value, true
}

// Status reports the lifecycle state of an identity.
func (c *Cache) Status(collection string, params map[string]string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key(collection, params)]
	if !ok {
		return StatusMissing
	}
	return e.status
}

// Invalidate marks every entry whose collection name starts with prefix as
// stale. Values are kept so views can show them until the next successful
// read. Entries with a fetch in flight are marked to land stale when the
// fetch stores its result.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if !strings.HasPrefix(e.collection, prefix) {
			continue
		}
		switch e.status {
		case StatusFresh:
			e.status = StatusStale
		case StatusFetching:
			e.staleOnStore = true
		}
	}
}

// Reset drops every entry. Used on session end.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// FetchedAt returns when the identity's value was last stored, for debugging
// and freshness displays.
func (c *Cache) FetchedAt(collection string, params map[string]string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key(collection, params)]
	if !ok || e.fetchedAt.IsZero() {
		return time.Time{}, false
	}
	return e.fetchedAt, true
}
