package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rapid-url/rapid-url/internal/shortener"
)

type memoryRecord struct {
	originalURL string
	owner       uuid.UUID
}

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[shortener.Code]memoryRecord
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[shortener.Code]memoryRecord),
	}
}

func (m *MemoryStore) Insert(_ context.Context, originalURL string, code shortener.Code, owner uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[code]; exists {
		return shortener.ErrCodeConflict
	}

	m.records[code] = memoryRecord{originalURL: originalURL, owner: owner}

	return nil
}

func (m *MemoryStore) Lookup(_ context.Context, code shortener.Code) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[code]
	if !ok {
		return "", shortener.ErrNotFound
	}

	return record.originalURL, nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[shortener.Code]memoryRecord)

	return nil
}

// Len reports the number of stored records, for tests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

var _ shortener.Repository = (*MemoryStore)(nil)
