package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/pkg/logger"
)

// DefaultCacheTTL is how long a fetched upstream resource is served without refetching.
const DefaultCacheTTL = 60 * time.Second

// CacheEntry is a payload together with the time of its last successful refresh.
type CacheEntry[T any] struct {
	Payload     T
	RefreshedAt time.Time
}

// CacheSnapshot describes one cache for the health endpoint.
type CacheSnapshot struct {
	Key         string     `json:"key"`
	Cached      bool       `json:"cached"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
	AgeSeconds  float64    `json:"age_seconds"`
	TTLSeconds  float64    `json:"ttl_seconds"`
	Fresh       bool       `json:"fresh"`
}

// StalenessCache holds the latest payload of a single upstream resource.
//
// An entry younger than the TTL is served without calling the fetcher. Otherwise the
// fetcher runs and, only if it succeeds, replaces the entry. A failed refresh never
// evicts. The lock covers the entry swap only, not the fetch, so concurrent refreshes
// can both reach the upstream and the last one to finish wins.
type StalenessCache[T any] struct {
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger

	mu    sync.RWMutex
	entry *CacheEntry[T]
}

func NewStalenessCache[T any](key string, ttl time.Duration, logger *logrus.Logger) *StalenessCache[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &StalenessCache[T]{
		key:    key,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// GetOrRefresh returns the cached payload while it is fresh, otherwise calls fetch.
func (c *StalenessCache[T]) GetOrRefresh(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	if entry, ok := c.Peek(); ok && c.now().Sub(entry.RefreshedAt) < c.ttl {
		return entry.Payload, nil
	}

	payload, err := fetch(ctx)
	if err != nil {
		logger.WithResource(c.logger, c.key).
			WithField("component", "cache").
			WithError(err).
			Warn("Refresh failed, keeping previous entry")
		var zero T
		return zero, err
	}

	refreshedAt := c.now()
	c.mu.Lock()
	c.entry = &CacheEntry[T]{Payload: payload, RefreshedAt: refreshedAt}
	c.mu.Unlock()

	logger.WithResource(c.logger, c.key).
		WithField("component", "cache").
		Debug("Refreshed cache entry")

	return payload, nil
}

// Peek returns the current entry without refreshing, regardless of its age.
func (c *StalenessCache[T]) Peek() (CacheEntry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return CacheEntry[T]{}, false
	}
	return *c.entry, true
}

func (c *StalenessCache[T]) Snapshot() CacheSnapshot {
	snapshot := CacheSnapshot{
		Key:        c.key,
		TTLSeconds: c.ttl.Seconds(),
	}
	entry, ok := c.Peek()
	if !ok {
		return snapshot
	}
	age := c.now().Sub(entry.RefreshedAt)
	refreshedAt := entry.RefreshedAt
	snapshot.Cached = true
	snapshot.RefreshedAt = &refreshedAt
	snapshot.AgeSeconds = age.Seconds()
	snapshot.Fresh = age < c.ttl
	return snapshot
}
