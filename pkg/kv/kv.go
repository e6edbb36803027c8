package kv

import "context"

// Store is the per-worker key/value interface the JSON-RPC dispatcher
// exposes to workers.
type Store interface {
	// Get returns the value stored at key for workerID. A missing key
	// returns a *baliuserrors.Error with KindKvNotFound.
	Get(ctx context.Context, workerID, key string) ([]byte, error)

	// Set upserts value at key for workerID.
	Set(ctx context.Context, workerID, key string, value []byte) error

	// List returns every key for workerID whose name starts with prefix,
	// ordered lexically.
	List(ctx context.Context, workerID, prefix string) ([]string, error)
}
