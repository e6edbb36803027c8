package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuemby/baliusd/pkg/crd"
	"github.com/cuemby/baliusd/pkg/registry"
	"github.com/cuemby/baliusd/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatcher struct {
	events chan Event
	errs   chan error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events: make(chan Event, 8),
		errs:   make(chan error, 1),
	}
}

func (w *fakeWatcher) Events() <-chan Event { return w.events }
func (w *fakeWatcher) Errs() <-chan error   { return w.errs }

func worker(name, network, url string) *crd.BaliusWorker {
	w := &crd.BaliusWorker{Spec: crd.BaliusWorkerSpec{
		Active:  true,
		Network: network,
		URL:     url,
	}}
	w.Name = name
	return w
}

func runUntil(t *testing.T, r *Reconciler, w *fakeWatcher, done chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		r.Run(ctx, w)
		close(done)
	}()
}

func TestApplyRegistersMatchingNetworkWorker(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	r := New("mainnet", rt, registry.New())
	w := newFakeWatcher()

	w.events <- Event{Kind: EventApply, Worker: worker("w1", "mainnet", "https://example.test/w1.wasm")}
	close(w.events)

	done := make(chan struct{})
	runUntil(t, r, w, done)
	<-done

	assert.True(t, rt.IsRegistered("w1"))
}

func TestApplySkipsOtherShardsNetwork(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	r := New("mainnet", rt, registry.New())
	w := newFakeWatcher()

	w.events <- Event{Kind: EventApply, Worker: worker("w1", "preprod", "https://example.test/w1.wasm")}
	close(w.events)

	done := make(chan struct{})
	runUntil(t, r, w, done)
	<-done

	assert.False(t, rt.IsRegistered("w1"))
}

func TestApplyNormalizesLegacyNetworkName(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	r := New("cardano-mainnet", rt, registry.New())
	w := newFakeWatcher()

	w.events <- Event{Kind: EventApply, Worker: worker("w1", "mainnet", "https://example.test/w1.wasm")}
	close(w.events)

	done := make(chan struct{})
	runUntil(t, r, w, done)
	<-done

	assert.True(t, rt.IsRegistered("w1"))
}

func TestDeleteRemovesWorkerAndClearsFailure(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	failed := registry.New()
	failed.Add("w1", "boom")
	r := New("mainnet", rt, failed)
	w := newFakeWatcher()

	w.events <- Event{Kind: EventApply, Worker: worker("w1", "mainnet", "https://example.test/w1.wasm")}
	w.events <- Event{Kind: EventDelete, Worker: worker("w1", "mainnet", "")}
	close(w.events)

	done := make(chan struct{})
	runUntil(t, r, w, done)
	<-done

	assert.False(t, rt.IsRegistered("w1"))
	_, ok := failed.Read("w1")
	assert.False(t, ok)
}

func TestApplyRecordsRegistrationFailure(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	failed := registry.New()
	r := New("mainnet", rt, failed)
	w := newFakeWatcher()

	w.events <- Event{Kind: EventApply, Worker: worker("w1", "mainnet", "s3://does-not-exist/w1.wasm")}
	close(w.events)

	done := make(chan struct{})
	runUntil(t, r, w, done)
	<-done

	assert.False(t, rt.IsRegistered("w1"))
	reason, ok := failed.Read("w1")
	require.True(t, ok)
	assert.NotEmpty(t, reason)
}

func TestWatchErrorCallsFatal(t *testing.T) {
	rt := runtime.NewFakeRuntime()
	r := New("mainnet", rt, registry.New())
	fatalCode := -1
	r.fatal = func(code int) { fatalCode = code }
	w := newFakeWatcher()

	w.errs <- errors.New("watch stream broke")

	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		r.Run(ctx, w)
		close(done)
	}()
	<-done
	assert.Equal(t, 1, fatalCode)
}
