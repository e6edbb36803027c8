package reconciler

import (
	"context"
	"os"

	"sync"

	"github.com/cuemby/baliusd/pkg/artifact"
	"github.com/cuemby/baliusd/pkg/chainnetwork"
	"github.com/cuemby/baliusd/pkg/crd"
	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/registry"
	"github.com/cuemby/baliusd/pkg/runtime"
	"github.com/rs/zerolog"
)

// Reconciler drives a Watcher's events into a runtime.Runtime, scoped to
// a single shard's network.
type Reconciler struct {
	network string
	runtime runtime.Runtime
	failed  *registry.FailedWorkers
	logger  zerolog.Logger

	activeMu sync.Mutex
	active   map[string]struct{}

	// fatal is called on an unrecoverable watch-stream error. It is
	// os.Exit in production and overridden in tests.
	fatal func(code int)
}

// New returns a Reconciler that registers workers whose spec's network,
// once normalized, matches network.
func New(network string, rt runtime.Runtime, failed *registry.FailedWorkers) *Reconciler {
	return &Reconciler{
		network: chainnetwork.Normalize(network),
		runtime: rt,
		failed:  failed,
		logger:  log.WithComponent("reconciler"),
		active:  make(map[string]struct{}),
		fatal:   os.Exit,
	}
}

// Run consumes w until ctx is cancelled or w reports an unrecoverable
// error, in which case Run calls r.fatal(1) and returns.
func (r *Reconciler) Run(ctx context.Context, w Watcher) {
	events := w.Events()
	errs := w.Errs()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			r.logger.Error().Err(err).Msg("worker watch stream failed, exiting")
			r.fatal(1)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.handle(ctx, ev)
		}
	}
}

func (r *Reconciler) handle(ctx context.Context, ev Event) {
	metrics.ReconcileCyclesTotal.Inc()
	switch ev.Kind {
	case EventInitDone:
		r.logger.Info().Msg("initial worker listing complete")
	case EventInit, EventInitApply, EventApply:
		r.apply(ctx, ev.Worker)
	case EventDelete:
		r.remove(ctx, ev.Worker)
	}
}

func (r *Reconciler) apply(ctx context.Context, w *crd.BaliusWorker) {
	id := w.Name
	logger := log.WithWorker(id)

	if chainnetwork.Normalize(w.Spec.Network) != r.network {
		logger.Debug().Str("network", w.Spec.Network).Msg("worker belongs to a different shard, skipping")
		return
	}

	if err := r.register(ctx, w); err != nil {
		reason := err.Error()
		r.failed.Add(id, reason)
		metrics.ReconcileFailuresTotal.WithLabelValues(id).Inc()
		metrics.WorkersFailed.Set(float64(r.failed.Count()))
		logger.Error().Err(err).Msg("registering worker failed")
		return
	}
	r.failed.Remove(id)
	metrics.WorkersFailed.Set(float64(r.failed.Count()))
	r.markActive(id)
}

func (r *Reconciler) register(ctx context.Context, w *crd.BaliusWorker) error {
	id := w.Name
	if artifact.IsS3URL(w.Spec.URL) {
		wasm, err := artifact.Fetch(ctx, w.Spec.URL)
		if err != nil {
			return baliuserrors.Registration(err, "fetching module for worker %s", id)
		}
		if err := r.runtime.RegisterWorker(ctx, id, wasm, w.Spec.Config); err != nil {
			return baliuserrors.Registration(err, "registering worker %s", id)
		}
		return nil
	}

	if err := r.runtime.RegisterWorkerFromURL(ctx, id, w.Spec.URL, w.Spec.Config); err != nil {
		return baliuserrors.Registration(err, "registering worker %s from url", id)
	}
	return nil
}

func (r *Reconciler) remove(ctx context.Context, w *crd.BaliusWorker) {
	id := w.Name
	if err := r.runtime.RemoveWorker(ctx, id); err != nil {
		log.WithWorker(id).Error().Err(err).Msg("removing worker failed")
	}
	r.failed.Remove(id)
	metrics.WorkersFailed.Set(float64(r.failed.Count()))
	r.markInactive(id)
}

// markActive records id as registered and updates the active-worker gauge.
func (r *Reconciler) markActive(id string) {
	r.activeMu.Lock()
	r.active[id] = struct{}{}
	count := len(r.active)
	r.activeMu.Unlock()
	metrics.WorkersActive.Set(float64(count))
}

// markInactive removes id from the registered set and updates the gauge.
func (r *Reconciler) markInactive(id string) {
	r.activeMu.Lock()
	delete(r.active, id)
	count := len(r.active)
	r.activeMu.Unlock()
	metrics.WorkersActive.Set(float64(count))
}
