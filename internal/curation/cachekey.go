package curation

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Key is the normalized identity of a curation lookup.
// Two logically identical queries always produce the same Key.
type Key struct {
	QueryKey   string
	Source     Source
	ParamsHash string
}

// NormalizeQuery case-folds a query and collapses internal and
// surrounding whitespace, so "Test Query" and "  test   query  "
// normalize to the same string. Pure and deterministic.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// ParamsHash fingerprints the lookup parameters. Changing scoring rules
// or upstream parameters changes the hash, so old cache entries miss
// naturally without explicit invalidation.
// Uses SHA256 truncated to 16 hex chars.
func ParamsHash(paramsVersion, cacheVersion string) string {
	h := sha256.New()
	h.Write([]byte(paramsVersion))
	h.Write([]byte{0})
	h.Write([]byte(cacheVersion))
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}

// BuildKey builds the cache key for a lookup. No side effects, no I/O,
// never fails.
func BuildKey(query string, source Source, paramsVersion, cacheVersion string) Key {
	return Key{
		QueryKey:   NormalizeQuery(query),
		Source:     source,
		ParamsHash: ParamsHash(paramsVersion, cacheVersion),
	}
}

// String returns the storage form of the key.
func (k Key) String() string {
	return k.QueryKey + "|" + string(k.Source) + "|" + k.ParamsHash
}
