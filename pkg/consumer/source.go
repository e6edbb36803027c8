package consumer

import (
	"context"
	"fmt"

	"github.com/cuemby/baliusd/pkg/chainnetwork"
	"github.com/cuemby/baliusd/pkg/crd"
	"github.com/cuemby/baliusd/pkg/types"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

var consumerResource = schema.GroupVersionResource{
	Group:    crd.GroupName,
	Version:  crd.Version,
	Resource: "baliusworkers",
}

// CRDSource lists consumers straight from the active BaliusWorker
// resources in a namespace: each active worker's auth token is a
// consumer key, namespaced by its (normalized) network and throughput
// tier.
type CRDSource struct {
	client    dynamic.Interface
	namespace string
}

// NewCRDSource returns a Source backed by the cluster's BaliusWorker
// resources in namespace.
func NewCRDSource(client dynamic.Interface, namespace string) *CRDSource {
	return &CRDSource{client: client, namespace: namespace}
}

func (s *CRDSource) List(ctx context.Context) ([]types.Consumer, error) {
	list, err := s.client.Resource(consumerResource).Namespace(s.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing baliusworkers: %w", err)
	}

	consumers := make([]types.Consumer, 0, len(list.Items))
	for _, item := range list.Items {
		var worker crd.BaliusWorker
		if err := unstructured.DefaultUnstructuredConverter.FromUnstructured(item.Object, &worker); err != nil {
			return nil, fmt.Errorf("decoding baliusworker %s: %w", item.GetName(), err)
		}
		if !worker.Spec.Active || worker.Spec.AuthToken == "" {
			continue
		}
		consumers = append(consumers, types.Consumer{
			Key:     worker.Spec.AuthToken,
			Network: chainnetwork.Normalize(worker.Spec.Network),
			Tier:    worker.Spec.ThroughputTier,
		})
	}
	return consumers, nil
}
