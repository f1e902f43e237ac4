package curation

import (
	"strings"
	"time"
)

// Stage names a phase of lookup. Each stage is an independent cache
// partition with its own TTL; stage is not part of the key identity.
type Stage string

const (
	// StageSearch holds the curated shortlist from an upstream search.
	StageSearch Stage = "search"

	// StageStats holds per-source stats enrichment (e.g. view counts).
	StageStats Stage = "stats"

	// StageHead holds URL head-validation results.
	StageHead Stage = "head"

	// StageNegative holds a cached "no results" outcome, kept briefly
	// to suppress repeated failing lookups.
	StageNegative Stage = "negative"
)

// Default stage TTLs, reflecting how quickly the underlying fact changes.
const (
	DefaultSearchTTL   = 7 * 24 * time.Hour
	DefaultStatsTTL    = 2 * 24 * time.Hour
	DefaultHeadTTL     = 5 * 24 * time.Hour
	DefaultNegativeTTL = 4 * time.Hour
)

// StatsStage returns the stats-enrichment stage for a source,
// e.g. "video-stats".
func StatsStage(source Source) Stage {
	return Stage(string(source) + "-" + string(StageStats))
}

// HeadStage returns the head-validation stage for a source,
// e.g. "article-head".
func HeadStage(source Source) Stage {
	return Stage(string(source) + "-" + string(StageHead))
}

// TTLTable maps stages to their TTLs. Adding a stage is a data change,
// not a code change.
type TTLTable map[Stage]time.Duration

// DefaultTTLs returns a fresh table with the default per-stage TTLs.
func DefaultTTLs() TTLTable {
	return TTLTable{
		StageSearch:   DefaultSearchTTL,
		StageStats:    DefaultStatsTTL,
		StageHead:     DefaultHeadTTL,
		StageNegative: DefaultNegativeTTL,
	}
}

// For resolves the TTL for a stage. Source-prefixed stages such as
// "video-stats" resolve through their base stage; unknown stages fall
// back to the search TTL.
func (t TTLTable) For(stage Stage) time.Duration {
	if d, ok := t[stage]; ok {
		return d
	}
	if i := strings.LastIndex(string(stage), "-"); i >= 0 {
		if d, ok := t[Stage(stage[i+1:])]; ok {
			return d
		}
	}
	if d, ok := t[StageSearch]; ok {
		return d
	}
	return DefaultSearchTTL
}
