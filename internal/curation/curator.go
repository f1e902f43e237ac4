package curation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CandidateFetcher is the upstream discovery collaborator: given a
// query and source it returns raw candidates. It may block and may
// fail; it is expected to carry its own timeout via ctx.
type CandidateFetcher func(ctx context.Context, query string, source Source) ([]Candidate, error)

// Options configures one curation request.
type Options struct {
	MinScore         float64
	MaxItems         int
	PreferDiversity  bool
	EarlyStopEnabled bool

	// ParamsVersion fingerprints upstream/scoring parameters into the
	// cache key, so tuning changes miss old entries naturally.
	ParamsVersion string

	// CacheVersion overrides the engine's cache format version in the
	// key fingerprint. Leave empty to use the engine's version.
	CacheVersion string
}

// Config configures the curation engine.
type Config struct {
	Store        Store
	Fetch        CandidateFetcher
	CacheVersion string
	Capacity     int
	TTLs         TTLTable
	Weights      Weights
	Logger       *slog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Curator is the caller-facing curation engine. Curate is the only
// entry point the surrounding application depends on.
type Curator struct {
	cache        *TieredCache
	coord        *Coordinator
	scorer       *Scorer
	fetch        CandidateFetcher
	logger       *slog.Logger
	cacheVersion string
	now          func() time.Time
}

// New creates the curation engine.
func New(cfg Config) (*Curator, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Fetch == nil {
		return nil, errors.New("fetcher is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cache, err := NewTieredCache(TieredCacheConfig{
		Store:    cfg.Store,
		Version:  cfg.CacheVersion,
		Capacity: cfg.Capacity,
		TTLs:     cfg.TTLs,
		Logger:   cfg.Logger,
		Now:      cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	coord, err := NewCoordinator(cache, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Curator{
		cache:        cache,
		coord:        coord,
		scorer:       NewScorer(cfg.Weights),
		fetch:        cfg.Fetch,
		logger:       cfg.Logger,
		cacheVersion: cfg.CacheVersion,
		now:          cfg.Now,
	}, nil
}

// Curate returns the ranked shortlist for a topic: cache key → two-tier
// cache → single-flight fetch → scoring → selection. "Nothing found" is
// an empty slice; only genuine upstream or store failures surface as
// errors.
func (c *Curator) Curate(ctx context.Context, query string, source Source, opts Options) ([]Scored, error) {
	cacheVersion := opts.CacheVersion
	if cacheVersion == "" {
		cacheVersion = c.cacheVersion
	}
	key := BuildKey(query, source, opts.ParamsVersion, cacheVersion)

	log := c.logger.With(
		"request_id", uuid.NewString(),
		"query_key", key.QueryKey,
		"source", source,
	)

	selOpts := SelectOptions{
		MinScore:         opts.MinScore,
		MaxItems:         opts.MaxItems,
		PreferDiversity:  opts.PreferDiversity,
		EarlyStopEnabled: opts.EarlyStopEnabled,
	}

	results, err := c.coord.GetOrFetch(ctx, key, StageSearch, func(ctx context.Context) ([]Scored, error) {
		candidates, err := c.fetch(ctx, query, source)
		if err != nil {
			return nil, err
		}

		now := c.now()
		scored := make([]Scored, 0, len(candidates))
		for _, cand := range candidates {
			scored = append(scored, c.scorer.Score(cand, query, now))
		}

		shortlist := SelectTop(scored, selOpts)
		log.Debug("curated fresh shortlist",
			"candidates", len(candidates), "selected", len(shortlist))
		return shortlist, nil
	})
	if err != nil {
		log.Debug("curation fetch failed", "error", err)
		return nil, err
	}
	return results, nil
}

// ClearMemory drops the in-process cache tier. The persistent store is
// untouched; subsequent reads rebuild the tier.
func (c *Curator) ClearMemory() {
	c.cache.Clear()
}

// MetricsSnapshot returns a point-in-time copy of cache and coordinator
// counters.
func (c *Curator) MetricsSnapshot() MetricsSnapshot {
	return c.cache.Metrics().Snapshot()
}
