package store

import (
	"context"
	"sync"

	"github.com/cuemby/baliusd/pkg/types"
)

// MemStore is an in-memory Store used by tests and local development; it
// mirrors PostgresStore's semantics without a database.
type MemStore struct {
	mu      sync.Mutex
	entries map[types.LogSeq]types.LogEntry
	nextSeq types.LogSeq
	cursors map[string]types.LogSeq
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		entries: make(map[types.LogSeq]types.LogEntry),
		cursors: make(map[string]types.LogSeq),
	}
}

func (s *MemStore) FindChainPoint(ctx context.Context, seq types.LogSeq) (*types.ChainPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[seq]
	if !ok {
		return nil, nil
	}
	return decodeChainPoint(entry.NextBlock), nil
}

func (s *MemStore) WriteAhead(ctx context.Context, undoBlocks [][]byte, nextBlock []byte) (types.LogSeq, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	s.entries[s.nextSeq] = types.LogEntry{NextBlock: nextBlock, UndoBlocks: undoBlocks}
	return s.nextSeq, nil
}

func (s *MemStore) GetWorkerCursor(ctx context.Context, workerID string) (*types.LogSeq, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.cursors[workerID]
	if !ok {
		return nil, nil
	}
	return &seq, nil
}

func (s *MemStore) StartAtomicUpdate(logSeq types.LogSeq) AtomicUpdate {
	return &memAtomicUpdate{store: s, logSeq: logSeq}
}

type memAtomicUpdate struct {
	store   *MemStore
	logSeq  types.LogSeq
	workers []string
}

func (u *memAtomicUpdate) Add(workerID string) {
	u.workers = append(u.workers, workerID)
}

func (u *memAtomicUpdate) Commit(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, w := range u.workers {
		u.store.cursors[w] = u.logSeq
	}
	return nil
}
