/*
Package operator implements baliusd's CRD status writeback (C9): a
controller-runtime Reconciler that watches BaliusWorker resources and
publishes each worker's public endpoint URLs onto its status.

It is grounded on the original operator crate's controller.rs: reconcile
computes a worker's hostname pair via build_hostname (here,
pkg/hostname.Build) and merge-patches endpointUrl, authenticatedEndpointUrl
and authToken onto the resource's status via patch_resource_status.
error_policy's 5-second Action::requeue and reconcile_failure metric are
carried as StatusReconciler's fixed RequeueAfter and
metrics.OperatorReconcileFailuresTotal.

Unlike pkg/reconciler (C6), which watches BaliusWorker with a raw
client-go dynamic informer to avoid the weight of a full manager for a
read-only consumer, the operator owns the resource's status subresource
and so is built on controller-runtime's client.Client and Reconciler
interface, the idiomatic Go pattern for CRD status writeback that
sigs.k8s.io/controller-runtime exists for.
*/
package operator
