// Package curation implements the resource curation engine: scoring and
// ranking of discovered learning resources (videos, articles, docs) behind
// a two-tier cache with single-flight fetch deduplication.
package curation

import "time"

// Source identifies where a candidate resource came from.
type Source string

const (
	// SourceVideo is a video search result (YouTube etc).
	SourceVideo Source = "video"

	// SourceArticle is a web article or documentation page.
	SourceArticle Source = "article"

	// SourceCourse is a structured course listing.
	SourceCourse Source = "course"
)

// Metadata carries the source-specific signals used for scoring.
// Fields that do not apply to a source are left at their zero value;
// scoring degrades the affected component instead of failing.
type Metadata struct {
	ViewCount       int64     `json:"view_count,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitempty"`
	DurationMinutes float64   `json:"duration_minutes,omitempty"`
	MatchedQuery    string    `json:"matched_query,omitempty"`
}

// Candidate is a discovered resource before scoring. URL is the identity
// key for deduplication.
type Candidate struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Source   Source   `json:"source"`
	Metadata Metadata `json:"metadata"`
}

// Score is the result of one scoring pass: the blended value used for
// ordering plus the named component breakdown.
type Score struct {
	Value      float64            `json:"value"`
	Components map[string]float64 `json:"components"`
	ScoredAt   time.Time          `json:"scored_at"`
}

// Scored is a candidate that has been through the scoring engine.
// It is immutable once produced; re-evaluation produces a new Scored.
type Scored struct {
	Candidate
	Score Score `json:"score"`
}
