package curation

import "sync/atomic"

// Tier identifies which cache tier served a result.
type Tier string

const (
	// TierMemory indicates a hit from the in-process LRU.
	TierMemory Tier = "memory"

	// TierStore indicates a hit from the persistent store.
	TierStore Tier = "store"

	// TierMiss indicates a miss across both tiers.
	TierMiss Tier = "miss"
)

// Metrics tracks cache and coordinator counters using lock-free atomics.
type Metrics struct {
	memoryHits   atomic.Int64
	memoryMisses atomic.Int64
	storeHits    atomic.Int64
	storeMisses  atomic.Int64

	fetches     atomic.Int64
	fetchShared atomic.Int64
	fetchErrors atomic.Int64
}

// RecordHit increments the hit counter for the tier.
func (m *Metrics) RecordHit(tier Tier) {
	switch tier {
	case TierMemory:
		m.memoryHits.Add(1)
	case TierStore:
		m.storeHits.Add(1)
	}
}

// RecordMiss increments the miss counter for the tier.
func (m *Metrics) RecordMiss(tier Tier) {
	switch tier {
	case TierMemory:
		m.memoryMisses.Add(1)
	case TierStore:
		m.storeMisses.Add(1)
	}
}

// RecordFetch counts one upstream fetch actually executed.
func (m *Metrics) RecordFetch() { m.fetches.Add(1) }

// RecordShared counts one caller served by another caller's in-flight fetch.
func (m *Metrics) RecordShared() { m.fetchShared.Add(1) }

// RecordFetchError counts one failed upstream fetch.
func (m *Metrics) RecordFetchError() { m.fetchErrors.Add(1) }

// TierStats holds hit/miss statistics for a single cache tier.
type TierStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate"`
	Requests int64   `json:"requests"`
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Memory      TierStats `json:"memory"`
	Store       TierStats `json:"store"`
	Fetches     int64     `json:"fetches"`
	FetchShared int64     `json:"fetch_shared"`
	FetchErrors int64     `json:"fetch_errors"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Memory:      makeTierStats(m.memoryHits.Load(), m.memoryMisses.Load()),
		Store:       makeTierStats(m.storeHits.Load(), m.storeMisses.Load()),
		Fetches:     m.fetches.Load(),
		FetchShared: m.fetchShared.Load(),
		FetchErrors: m.fetchErrors.Load(),
	}
}

func makeTierStats(hits, misses int64) TierStats {
	total := hits + misses
	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total)
	}
	return TierStats{
		Hits:     hits,
		Misses:   misses,
		HitRate:  rate,
		Requests: total,
	}
}
