/*
Package reconciler watches BaliusWorker custom resources and keeps the
runtime's set of registered workers in sync with them.

A BaliusWorker belongs to exactly one shard, identified by its spec's
Network field (after chainnetwork normalization). The reconciler ignores
resources for other networks entirely: they are some other pod's shard's
problem.

For a worker that does belong to this shard, the reconciler registers it
with the runtime on Init, InitApply and Apply events, and unloads it on
Delete. An s3:// module is downloaded via pkg/artifact and registered as
bytes; any other URL is handed to the runtime's RegisterWorkerFromURL,
which fetches it itself. A registration failure is recorded in a FailedWorkers registry
rather than treated as fatal: the reconciler keeps running and the
JSON-RPC server short-circuits requests to a failed worker with its
recorded reason, exactly as the worker's status would suggest.

An error from the watch stream itself is different: it means the
reconciler has lost its view of the cluster's workers and cannot tell
which ones are still supposed to be running. That is fatal, mirroring the
original balius instance's crdwatcher, which exits the process rather
than limping along on stale state.
*/
package reconciler
