/*
Package metrics defines and registers baliusd's Prometheus metrics.

It carries forward the five counters the original balius instance exposed
(kvget, kvset, kvlist, log, requests, all labeled by worker) and adds the
teacher-style metrics this domain calls for: active/failed worker gauges,
reconcile cycle and failure counters, operator reconcile-failure counters
per custom resource, and the edge proxy's request/duration/rate-limit
counters. All metrics are registered once at package init and are safe for
concurrent use from any package that imports this one.
*/
package metrics
