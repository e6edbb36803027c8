package kv

import (
	"context"
	"sort"
	"strings"
	"sync"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
)

// MemStore is an in-memory Store used by tests and local development.
type MemStore struct {
	mu   sync.Mutex
	data map[string]map[string][]byte // workerID -> key -> value
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string][]byte)}
}

func (s *MemStore) Get(ctx context.Context, workerID, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.data[workerID]
	if !ok {
		return nil, baliuserrors.KvNotFound("key %q not found for worker %q", key, workerID)
	}
	value, ok := worker[key]
	if !ok {
		return nil, baliuserrors.KvNotFound("key %q not found for worker %q", key, workerID)
	}
	return value, nil
}

func (s *MemStore) Set(ctx context.Context, workerID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.data[workerID]
	if !ok {
		worker = make(map[string][]byte)
		s.data[workerID] = worker
	}
	worker[key] = value
	return nil
}

func (s *MemStore) List(ctx context.Context, workerID, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.data[workerID]
	if !ok {
		return nil, nil
	}

	var keys []string
	for key := range worker {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
