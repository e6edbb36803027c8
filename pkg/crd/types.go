package crd

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// GroupName is the API group BaliusWorker is registered under.
const GroupName = "demeter.run"

// Version is the API version BaliusWorker is registered under.
const Version = "v1alpha1"

// BaliusWorkerSpec is the desired state of a worker: where its compiled
// module lives, which network/tier it belongs to, and the config blob
// passed to it at registration.
type BaliusWorkerSpec struct {
	Active         bool           `json:"active,omitempty"`
	Network        string         `json:"network"`
	ThroughputTier string         `json:"throughputTier"`
	AuthToken      string         `json:"authToken"`
	Version        string         `json:"version"`
	URL            string         `json:"url"`
	Config         map[string]any `json:"config,omitempty"`
	DisplayName    string         `json:"displayName"`
}

// BaliusWorkerStatus is the observed state the operator publishes back
// onto the resource.
type BaliusWorkerStatus struct {
	EndpointURL             string `json:"endpointUrl,omitempty"`
	AuthenticatedEndpointURL string `json:"authenticatedEndpointUrl,omitempty"`
	AuthToken               string `json:"authToken,omitempty"`
	Error                   string `json:"error,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// BaliusWorker is the custom resource representing one registered
// worker.
type BaliusWorker struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BaliusWorkerSpec   `json:"spec"`
	Status BaliusWorkerStatus `json:"status,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// BaliusWorkerList is a list of BaliusWorker.
type BaliusWorkerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []BaliusWorker `json:"items"`
}

func (in *BaliusWorkerSpec) DeepCopyInto(out *BaliusWorkerSpec) {
	*out = *in
	if in.Config != nil {
		out.Config = make(map[string]any, len(in.Config))
		for k, v := range in.Config {
			out.Config[k] = v
		}
	}
}

func (in *BaliusWorkerSpec) DeepCopy() *BaliusWorkerSpec {
	if in == nil {
		return nil
	}
	out := new(BaliusWorkerSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *BaliusWorkerStatus) DeepCopyInto(out *BaliusWorkerStatus) {
	*out = *in
}

func (in *BaliusWorkerStatus) DeepCopy() *BaliusWorkerStatus {
	if in == nil {
		return nil
	}
	out := new(BaliusWorkerStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *BaliusWorker) DeepCopyInto(out *BaliusWorker) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	out.Status = in.Status
}

func (in *BaliusWorker) DeepCopy() *BaliusWorker {
	if in == nil {
		return nil
	}
	out := new(BaliusWorker)
	in.DeepCopyInto(out)
	return out
}

func (in *BaliusWorker) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *BaliusWorkerList) DeepCopyInto(out *BaliusWorkerList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]BaliusWorker, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *BaliusWorkerList) DeepCopy() *BaliusWorkerList {
	if in == nil {
		return nil
	}
	out := new(BaliusWorkerList)
	in.DeepCopyInto(out)
	return out
}

func (in *BaliusWorkerList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
