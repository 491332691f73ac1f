// internal/storage/memory.go
package storage

import (
	"context"
	"sync"

	"github.com/adoptyme/backend/internal/domain"
)

// MemoryStore is the fake object store selected by S3.Fake and used in
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) SaveFile(ctx context.Context, prefix, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[objectKey(prefix, key)] = buf
	return nil
}

func (s *MemoryStore) DeleteFile(ctx context.Context, prefix, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey(prefix, key))
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, prefix, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[objectKey(prefix, key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
