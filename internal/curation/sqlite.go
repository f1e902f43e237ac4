package curation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// curationSchema creates the persistent cache table. One row per
// (cache_key, stage) partition.
const curationSchema = `
CREATE TABLE IF NOT EXISTS curation_cache (
  cache_key     TEXT NOT NULL,
  stage         TEXT NOT NULL,
  results_json  TEXT NOT NULL,
  cache_version TEXT NOT NULL,
  created_ms    INTEGER NOT NULL,
  expires_ms    INTEGER NOT NULL,
  hit_count     INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (cache_key, stage)
);

CREATE INDEX IF NOT EXISTS idx_curation_cache_expires ON curation_cache(expires_ms);
`

// SQLiteStore is the durable cache tier backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the cache database at path
// and ensures the schema exists. The caller must call Close when done.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, curationSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Get returns the stored payload for the key/stage pair, or ErrNotFound.
// On a hit the row's hit_count is incremented best-effort.
func (s *SQLiteStore) Get(ctx context.Context, key Key, stage Stage) (*Payload, error) {
	var resultsJSON, cacheVersion string
	var expiresMs int64

	err := s.db.QueryRowContext(ctx,
		`SELECT results_json, cache_version, expires_ms
		 FROM curation_cache WHERE cache_key = ? AND stage = ?`,
		key.String(), string(stage),
	).Scan(&resultsJSON, &cacheVersion, &expiresMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var results []Scored
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	_, _ = s.db.ExecContext(ctx,
		`UPDATE curation_cache SET hit_count = hit_count + 1 WHERE cache_key = ? AND stage = ?`,
		key.String(), string(stage))

	return &Payload{
		Results:      results,
		ExpiresAt:    time.UnixMilli(expiresMs),
		CacheVersion: cacheVersion,
	}, nil
}

// Put stores or replaces the payload for the key/stage pair.
func (s *SQLiteStore) Put(ctx context.Context, key Key, stage Stage, payload *Payload) error {
	if payload == nil {
		return errors.New("payload cannot be nil")
	}

	data, err := json.Marshal(payload.Results)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO curation_cache
		   (cache_key, stage, results_json, cache_version, created_ms, expires_ms, hit_count)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		key.String(), string(stage), string(data), payload.CacheVersion,
		time.Now().UnixMilli(), payload.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Prune removes all expired rows. Returns the number removed.
func (s *SQLiteStore) Prune(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM curation_cache WHERE expires_ms < ?`, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return result.RowsAffected()
}

// StoreStats summarizes the persistent cache contents.
type StoreStats struct {
	TotalEntries   int64
	ExpiredEntries int64
	TotalHits      int64
}

// Stats returns row counts and total hits for the persistent cache.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	var stats StoreStats

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(hit_count), 0) FROM curation_cache`)
	if err := row.Scan(&stats.TotalEntries, &stats.TotalHits); err != nil {
		return nil, fmt.Errorf("failed to get cache stats: %w", err)
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM curation_cache WHERE expires_ms < ?`, time.Now().UnixMilli())
	if err := row.Scan(&stats.ExpiredEntries); err != nil {
		return nil, fmt.Errorf("failed to get expired count: %w", err)
	}

	return &stats, nil
}
