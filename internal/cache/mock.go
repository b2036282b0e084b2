package cache

import (
	"context"
	"sync"
	"time"
)

// MockImportCache provides an in-memory implementation for tests and for
// running without Redis.
type MockImportCache struct {
	mu   sync.Mutex
	data map[string]bool
}

func NewMockImportCache() *MockImportCache {
	return &MockImportCache{
		data: make(map[string]bool),
	}
}

func (m *MockImportCache) Close() error {
	return nil
}

func (m *MockImportCache) IsImported(ctx context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[hash], nil
}

func (m *MockImportCache) MarkImported(ctx context.Context, hash string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[hash] = true
	return nil
}

func (m *MockImportCache) ClearImported(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]bool)
	return nil
}
