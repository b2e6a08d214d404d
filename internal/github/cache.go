// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a cached repository snapshot stays valid.
// GitHub star counts and readmes move slowly; ten minutes keeps the widget
// responsive without hammering the unauthenticated rate limit.
const DefaultTTL = 10 * time.Minute

// =============================================================================
// METADATA CACHE
// =============================================================================

// fetcher is the subset of Client the cache depends on.
type fetcher interface {
	GetRepository(ctx context.Context, name string) (*Repository, error)
	ListRepositories(ctx context.Context) ([]RepoSummary, error)
}

// cacheEntry is one cached snapshot with its storage time.
type cacheEntry struct {
	repo     *Repository
	storedAt time.Time
}

// CacheStats holds cache hit/miss counters.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// Cache is a time-boxed cache in front of the GitHub client. An entry is
// returned only while its age is under the TTL; an expired entry is treated
// as a miss and the next Fetch replaces the slot wholesale.
//
// Each slot is independently replaceable: concurrent fetches for the same
// key may race, and the last write wins without corruption.
type Cache struct {
	mu      sync.Mutex
	client  fetcher
	ttl     time.Duration
	entries map[string]cacheEntry

	// Repository listing, cached under the same TTL as the snapshots.
	listing       []RepoSummary
	listingStored time.Time

	// Injectable clock for tests.
	now func() time.Time

	hits   int
	misses int
}

// NewCache creates a metadata cache wrapping the given client.
func NewCache(client fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client:  client,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// SetTTL changes the expiry window for subsequent lookups. Existing entries
// are re-evaluated against the new TTL on access. Used by config hot reload.
func (c *Cache) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

// Get returns the cached snapshot for key if it is still within the TTL.
// An expired entry is never returned.
func (c *Cache) Get(key string) (*Repository, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.misses++
		return nil, false
	}

	c.hits++
	return entry.repo, true
}

// Fetch performs the combined repository lookup and stores the result,
// replacing any prior entry for the key. NotFound and transport errors from
// the client propagate unchanged.
func (c *Cache) Fetch(ctx context.Context, key string) (*Repository, error) {
	repo, err := c.client.GetRepository(ctx, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{repo: repo, storedAt: c.now()}
	c.mu.Unlock()

	return repo, nil
}

// GetOrFetch returns the cached snapshot when fresh, otherwise fetches and
// caches a new one.
func (c *Cache) GetOrFetch(ctx context.Context, key string) (*Repository, error) {
	if repo, ok := c.Get(key); ok {
		return repo, nil
	}
	return c.Fetch(ctx, key)
}

// ListRepositories returns the cached repository listing when it is still
// within the TTL, otherwise fetches a fresh one. A fetch failure with a
// stale listing on hand propagates the error rather than serving stale data.
func (c *Cache) ListRepositories(ctx context.Context) ([]RepoSummary, error) {
	c.mu.Lock()
	if c.listing != nil && c.now().Sub(c.listingStored) < c.ttl {
		c.hits++
		listing := c.listing
		c.mu.Unlock()
		return listing, nil
	}
	c.misses++
	c.mu.Unlock()

	listing, err := c.client.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.listing = listing
	c.listingStored = c.now()
	c.mu.Unlock()

	return listing, nil
}

// Invalidate removes the entry for key, if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Stats returns the current hit/miss counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: len(c.entries),
	}
}
