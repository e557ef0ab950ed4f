// Package storetest provides in-memory test doubles for the store
// interfaces, so service and handler tests run without a real backend.
package storetest

import (
	"context"
	"sync"

	"github.com/minhokim/sejong-api/internal/store"
)

// MemoryKV is an in-memory implementation of store.KV.
// Safe for concurrent use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailReads forces every Get to return the given error, for exercising
	// the degrade-to-default read paths.
	FailReads error

	// FailWrites forces every Set and Delete to return the given error.
	FailWrites error
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements store.KV.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailReads != nil {
		return nil, m.FailReads
	}

	value, ok := m.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}

	// Copy so callers cannot mutate the stored document.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements store.KV.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete implements store.KV.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}

	delete(m.data, key)
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

var _ store.KV = (*MemoryKV)(nil)
