// Package memory provides in-memory driven-port implementations.
// Used as test fixtures and as the default store when no data
// directory is configured.
package memory

import (
	"context"
	"sync"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.MetadataStore = (*KVStore)(nil)

// KVStore is an in-memory implementation of driven.MetadataStore.
// An optional per-value byte limit models device storage pressure.
type KVStore struct {
	mu            sync.RWMutex
	data          map[string][]byte
	maxValueBytes int
}

// KVOption customises a KVStore.
type KVOption func(*KVStore)

// WithValueLimit rejects writes larger than n bytes with
// domain.ErrCapacityExceeded. Zero means unlimited.
func WithValueLimit(n int) KVOption {
	return func(s *KVStore) { s.maxValueBytes = n }
}

// NewKVStore creates a new in-memory metadata store.
func NewKVStore(opts ...KVOption) *KVStore {
	s := &KVStore{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the value for a key.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value under a key.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxValueBytes > 0 && len(value) > s.maxValueBytes {
		return domain.ErrCapacityExceeded
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// ListKeys returns all stored keys.
func (s *KVStore) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
