package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/types"
)

// Source lists the current set of consumers, e.g. from BaliusWorker CRDs
// or a static file.
type Source interface {
	List(ctx context.Context) ([]types.Consumer, error)
}

// Registry is a refreshable api_key -> Consumer lookup table.
type Registry struct {
	source Source

	mu        sync.RWMutex
	consumers map[string]types.Consumer
}

// NewRegistry returns an empty Registry backed by source. Call Refresh
// (directly or via Run) before serving requests.
func NewRegistry(source Source) *Registry {
	return &Registry{source: source, consumers: make(map[string]types.Consumer)}
}

// Get looks up the Consumer for key.
func (r *Registry) Get(key string) (types.Consumer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.consumers[key]
	return c, ok
}

// Refresh re-lists source and atomically replaces the lookup table.
func (r *Registry) Refresh(ctx context.Context) error {
	consumers, err := r.source.List(ctx)
	if err != nil {
		return err
	}

	byKey := make(map[string]types.Consumer, len(consumers))
	for _, c := range consumers {
		byKey[c.Key] = c
	}

	r.mu.Lock()
	r.consumers = byKey
	r.mu.Unlock()
	return nil
}

// Run refreshes the registry every interval until ctx is cancelled. A
// failed refresh is logged and the previous table keeps serving.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				log.Error("refreshing consumer registry: " + err.Error())
			}
		}
	}
}
