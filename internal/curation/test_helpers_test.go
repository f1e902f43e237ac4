package curation

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store for tests, with injectable failures.
type memStore struct {
	mu     sync.Mutex
	rows   map[string]*Payload
	getErr error
	putErr error
	gets   int
	puts   int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]*Payload)}
}

func (m *memStore) Get(_ context.Context, key Key, stage Stage) (*Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.rows[lruKey(key, stage)]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *memStore) Put(_ context.Context, key Key, stage Stage, payload *Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.rows[lruKey(key, stage)] = payload
	return nil
}

func (m *memStore) row(key Key, stage Stage) (*Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[lruKey(key, stage)]
	return p, ok
}

// fakeClock is an adjustable clock for expiry tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// scoredFixture builds a minimal Scored value for cache tests.
func scoredFixture(url string, source Source, value float64) Scored {
	return Scored{
		Candidate: Candidate{URL: url, Title: url, Source: source},
		Score: Score{
			Value:      value,
			Components: map[string]float64{ComponentRelevance: value},
		},
	}
}
