/*
Package crd defines the BaliusWorker custom resource: one CR per worker,
read by the reconciler (C6) to register/remove workers in the runtime and
by the operator (C9) to publish each worker's public endpoint URLs.

Group demeter.run, version v1alpha1, kind BaliusWorker, namespaced.
*/
package crd
