package reconciler

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/cuemby/baliusd/pkg/crd"
	"github.com/cuemby/baliusd/pkg/log"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/tools/cache"
)

var errNotUnstructured = errors.New("watch event object is not unstructured")

var workerResource = schema.GroupVersionResource{
	Group:    crd.GroupName,
	Version:  crd.Version,
	Resource: "baliusworkers",
}

// K8sWatcher streams BaliusWorker watch events from the cluster via a
// dynamic informer, so the reconciler needs no generated clientset for
// the CRD.
type K8sWatcher struct {
	events chan Event
	errs   chan error
}

// NewK8sWatcher starts an informer for BaliusWorker resources in
// namespace and returns a Watcher over it. It runs until ctx is
// cancelled.
func NewK8sWatcher(ctx context.Context, client dynamic.Interface, namespace string) *K8sWatcher {
	w := &K8sWatcher{
		events: make(chan Event, 64),
		errs:   make(chan error, 1),
	}

	factory := dynamicinformer.NewFilteredDynamicSharedInformerFactory(client, 0, namespace, nil)
	informer := factory.ForResource(workerResource).Informer()

	var synced atomic.Bool
	_, _ = informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			worker, err := toWorker(obj)
			if err != nil {
				log.Error("decoding watch event: " + err.Error())
				return
			}
			kind := EventApply
			if !synced.Load() {
				kind = EventInit
			}
			w.events <- Event{Kind: kind, Worker: worker}
		},
		UpdateFunc: func(_, newObj any) {
			worker, err := toWorker(newObj)
			if err != nil {
				log.Error("decoding watch event: " + err.Error())
				return
			}
			w.events <- Event{Kind: EventApply, Worker: worker}
		},
		DeleteFunc: func(obj any) {
			worker, err := toWorker(obj)
			if err != nil {
				log.Error("decoding watch event: " + err.Error())
				return
			}
			w.events <- Event{Kind: EventDelete, Worker: worker}
		},
	})

	factory.Start(ctx.Done())
	go func() {
		if !cache.WaitForCacheSync(ctx.Done(), informer.HasSynced) {
			w.errs <- context.Canceled
			close(w.events)
			close(w.errs)
			return
		}
		synced.Store(true)
		w.events <- Event{Kind: EventInitDone}

		<-ctx.Done()
		close(w.events)
		close(w.errs)
	}()

	return w
}

func (w *K8sWatcher) Events() <-chan Event { return w.events }
func (w *K8sWatcher) Errs() <-chan error   { return w.errs }

func toWorker(obj any) (*crd.BaliusWorker, error) {
	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
			return toWorker(tombstone.Obj)
		}
		return nil, errNotUnstructured
	}
	var worker crd.BaliusWorker
	if err := unstructured.DefaultUnstructuredConverter.FromUnstructured(u.Object, &worker); err != nil {
		return nil, err
	}
	return &worker, nil
}
