package curation

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when no row exists for the
// key/stage pair.
var ErrNotFound = errors.New("cache entry not found")

// Payload is a cached curation result for one key/stage partition.
type Payload struct {
	Results      []Scored  `json:"results"`
	ExpiresAt    time.Time `json:"expires_at"`
	CacheVersion string    `json:"cache_version"`
}

// Valid reports whether the payload can be served: not expired and
// written by the current cache format version. An invalid payload is a
// cache miss, not an error.
func (p *Payload) Valid(now time.Time, version string) bool {
	if p == nil {
		return false
	}
	return now.Before(p.ExpiresAt) && p.CacheVersion == version
}

// Store is the persistent cache tier: a durable key+stage -> payload
// table. The engine treats it as authoritative; the in-process LRU in
// front of it is disposable. Implementations must provide
// read-your-writes within a process.
type Store interface {
	// Get returns the payload for the key/stage pair, or ErrNotFound.
	// Expiry and version are not checked here; the read path decides
	// validity.
	Get(ctx context.Context, key Key, stage Stage) (*Payload, error)

	// Put stores the payload for the key/stage pair, replacing any
	// previous row.
	Put(ctx context.Context, key Key, stage Stage, payload *Payload) error
}
