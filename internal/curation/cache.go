package curation

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultLRUCapacity is the default number of payloads held in memory.
const DefaultLRUCapacity = 256

// TieredCache is the two-tier read path: a bounded in-process LRU in
// front of the authoritative persistent store. The LRU is a disposable
// accelerator; dropping it costs latency, never correctness.
type TieredCache struct {
	lru     *LRU[string, *Payload]
	store   Store
	version string
	ttls    TTLTable
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// TieredCacheConfig configures the two-tier cache.
type TieredCacheConfig struct {
	Store    Store
	Version  string
	Capacity int
	TTLs     TTLTable
	Logger   *slog.Logger
	Metrics  *Metrics

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewTieredCache creates a two-tier cache over the given store.
func NewTieredCache(cfg TieredCacheConfig) (*TieredCache, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultLRUCapacity
	}
	if cfg.TTLs == nil {
		cfg.TTLs = DefaultTTLs()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TieredCache{
		lru:     NewLRU[string, *Payload](cfg.Capacity),
		store:   cfg.Store,
		version: cfg.Version,
		ttls:    cfg.TTLs,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     cfg.Now,
	}, nil
}

// lruKey partitions the LRU by stage the same way the store is
// partitioned, so stages stay independent.
func lruKey(key Key, stage Stage) string {
	return key.String() + "#" + string(stage)
}

// Get returns the cached shortlist for the key/stage pair, checking the
// LRU first and falling through to the store. A valid store hit
// populates the LRU (read-through write-back). Expired or
// version-mismatched payloads are logical misses: they are purged from
// the LRU and never promoted into it.
func (c *TieredCache) Get(ctx context.Context, key Key, stage Stage) ([]Scored, bool) {
	k := lruKey(key, stage)
	now := c.now()

	if p, ok := c.lru.Get(k); ok {
		if p.Valid(now, c.version) {
			c.metrics.RecordHit(TierMemory)
			return p.Results, true
		}
		c.lru.Delete(k)
	}
	c.metrics.RecordMiss(TierMemory)

	p, err := c.store.Get(ctx, key, stage)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Debug("store read failed", "key", key.String(), "stage", stage, "error", err)
		}
		c.metrics.RecordMiss(TierStore)
		return nil, false
	}
	if !p.Valid(now, c.version) {
		c.metrics.RecordMiss(TierStore)
		return nil, false
	}

	c.lru.Put(k, p)
	c.metrics.RecordHit(TierStore)
	return p.Results, true
}

// Put writes the shortlist to the persistent store with the stage's TTL,
// then refreshes the LRU with the same payload. The LRU is refreshed
// even when the store write fails, so in-process callers keep working
// while durability is degraded; the store error is returned.
func (c *TieredCache) Put(ctx context.Context, key Key, stage Stage, results []Scored) error {
	p := &Payload{
		Results:      results,
		ExpiresAt:    c.now().Add(c.ttls.For(stage)),
		CacheVersion: c.version,
	}

	err := c.store.Put(ctx, key, stage, p)
	c.lru.Put(lruKey(key, stage), p)
	if err != nil {
		return err
	}
	return nil
}

// Clear drops the in-process tier. The store is untouched.
func (c *TieredCache) Clear() {
	c.lru.Clear()
}

// Metrics returns the shared metrics instance.
func (c *TieredCache) Metrics() *Metrics {
	return c.metrics
}

// TTLs returns the stage TTL table in use.
func (c *TieredCache) TTLs() TTLTable {
	return c.ttls
}
