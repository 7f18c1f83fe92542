package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]store.Snapshot
	latest    map[string]string // source -> snapshot ID
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		snapshots: make(map[string]store.Snapshot),
		latest:    make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot implements store.Store.
func (s *Store) SaveSnapshot(ctx context.Context, snap store.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = store.NewID(snap.CreatedAt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snap.ID] = store.CopySnapshot(snap)
	if cur, ok := s.latest[snap.Source]; !ok || newer(snap, s.snapshots[cur]) {
		s.latest[snap.Source] = snap.ID
	}
	return snap.ID, nil
}

// GetSnapshot implements store.Store.
func (s *Store) GetSnapshot(ctx context.Context, id string) (store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return store.Snapshot{}, fmt.Errorf("snapshot %s: %w", id, internalerr.ErrNotFound)
	}
	return store.CopySnapshot(snap), nil
}

// LatestSnapshot implements store.Store.
func (s *Store) LatestSnapshot(ctx context.Context, source string) (store.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.latest[source]
	if !ok {
		return store.Snapshot{}, false, nil
	}
	return store.CopySnapshot(s.snapshots[id]), true, nil
}

func newer(a, b store.Snapshot) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
