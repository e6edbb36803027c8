package leaderelection

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// metaObject names the Lease object used for a shard's leader election:
// one Lease per shard, named after the shard itself.
func metaObject(namespace, shard string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      shard,
		Namespace: namespace,
	}
}
