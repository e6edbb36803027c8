/*
Package metricsserver runs the standalone HTTP server that exposes
baliusd's Prometheus metrics, grounded on the original instance's
metrics.rs run/metrics_handler: a single "/metrics" route, served on its
own address separate from the JSON-RPC server. pkg/metrics already owns
the counters and registration; this package only owns the listener.
*/
package metricsserver
