package crd

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupVersion is the API group+version BaliusWorker is registered
// under.
var GroupVersion = schema.GroupVersion{Group: GroupName, Version: Version}

var (
	SchemeBuilder = runtime.NewSchemeBuilder(addKnownTypes)
	AddToScheme   = SchemeBuilder.AddToScheme
)

func addKnownTypes(scheme *runtime.Scheme) error {
	scheme.AddKnownTypes(GroupVersion,
		&BaliusWorker{},
		&BaliusWorkerList{},
	)
	metav1.AddToGroupVersion(scheme, GroupVersion)
	return nil
}
