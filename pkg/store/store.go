package store

import (
	"context"

	"github.com/cuemby/baliusd/pkg/types"
)

// Store is the durable, shard-scoped WAL + cursor backend a shard's
// chain-sync fan-out reads and writes. Implementations must be safe for concurrent
// use across goroutines.
type Store interface {
	// FindChainPoint decodes the LogEntry at seq and returns the chain
	// point its next block resolves to, or nil if seq has no entry.
	FindChainPoint(ctx context.Context, seq types.LogSeq) (*types.ChainPoint, error)

	// WriteAhead appends a new LogEntry and returns the sequence number
	// the store assigned it.
	WriteAhead(ctx context.Context, undoBlocks [][]byte, nextBlock []byte) (types.LogSeq, error)

	// GetWorkerCursor returns the highest LogSeq a worker has consumed,
	// or nil if the worker has never committed a cursor.
	GetWorkerCursor(ctx context.Context, workerID string) (*types.LogSeq, error)

	// StartAtomicUpdate begins a batch of worker-cursor advances that
	// will all land at logSeq once Commit is called.
	StartAtomicUpdate(logSeq types.LogSeq) AtomicUpdate
}

// AtomicUpdate accumulates worker IDs whose cursor should advance to a
// single LogSeq, then commits them all in one transaction.
type AtomicUpdate interface {
	// Add marks workerID as having consumed the entry at this update's
	// LogSeq.
	Add(workerID string)

	// Commit persists every Add call so far.
	Commit(ctx context.Context) error
}
