package curation

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces the curated shortlist for a key when both cache
// tiers miss. It is invoked at most once per in-flight (key, stage).
type FetchFunc func(ctx context.Context) ([]Scored, error)

// Coordinator deduplicates concurrent upstream fetches: at most one
// fetch is in flight per (key, stage), and every caller that arrives
// while it runs awaits the same result. A failed fetch propagates to
// all waiters and caches nothing, so a later call retries upstream.
type Coordinator struct {
	cache  *TieredCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewCoordinator creates a coordinator over the given cache.
func NewCoordinator(cache *TieredCache, logger *slog.Logger) (*Coordinator, error) {
	if cache == nil {
		return nil, errors.New("cache is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{cache: cache, logger: logger}, nil
}

// GetOrFetch returns the cached shortlist for the key/stage pair, or
// coordinates a single upstream fetch among concurrent callers.
//
// A successful fetch is committed to both cache tiers before waiters
// are released: non-empty results under the requested stage's TTL,
// empty results under the negative stage's short TTL so repeated
// failing topics do not hammer upstream. Results already cached win
// over a concurrent fetch's output; the committed value is what every
// caller in the dedup window observes.
func (co *Coordinator) GetOrFetch(ctx context.Context, key Key, stage Stage, fetch FetchFunc) ([]Scored, error) {
	if results, ok := co.lookup(ctx, key, stage); ok {
		return results, nil
	}

	v, err, shared := co.group.Do(lruKey(key, stage), func() (interface{}, error) {
		// Another caller may have committed while we waited for the
		// flight slot; serve the committed value as-is.
		if results, ok := co.lookup(ctx, key, stage); ok {
			return results, nil
		}

		co.cache.metrics.RecordFetch()
		results, err := fetch(ctx)
		if err != nil {
			co.cache.metrics.RecordFetchError()
			return nil, err
		}

		commitStage := stage
		if len(results) == 0 {
			commitStage = StageNegative
		}
		if putErr := co.cache.Put(ctx, key, commitStage, results); putErr != nil {
			// Waiters still get the fetched results; only durability
			// is degraded.
			co.logger.Warn("cache write failed",
				"key", key.String(), "stage", commitStage, "error", putErr)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		co.cache.metrics.RecordShared()
	}
	return v.([]Scored), nil
}

// lookup consults the requested stage, then the negative stage, so a
// recently cached miss suppresses refetching until its TTL lapses.
func (co *Coordinator) lookup(ctx context.Context, key Key, stage Stage) ([]Scored, bool) {
	if results, ok := co.cache.Get(ctx, key, stage); ok {
		return results, true
	}
	if stage != StageNegative {
		if results, ok := co.cache.Get(ctx, key, StageNegative); ok {
			return results, true
		}
	}
	return nil, false
}
