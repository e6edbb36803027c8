/*
Package health probes baliusd's external dependencies — Vault (the
signer's transit engine) over HTTP, Postgres (the store) over TCP — on an
interval, and republishes the result into pkg/metrics's component health
registry, so metrics.GetHealth reports real dependency state rather than
just process liveness. metrics.GetReadiness consults only the store,
leaderelection and rpcserver components, so these probes do not change
readiness.

Checker, Result, Status and Config keep Warren's original container
health-check shape (hysteresis via ConsecutiveFailures/ConsecutiveSuccesses,
a StartPeriod grace window), since a dependency flapping between healthy
and unhealthy needs exactly the same debounce a flapping container
would. There is no ExecChecker here: baliusd has no containers to exec
into, only network-reachable dependencies, so only HTTPChecker and
TCPChecker survive. Prober is new: it drives a Checker on an interval and
calls metrics.UpdateComponent, replacing Warren's worker/reconciler
integration (which fed container replacement decisions) with a pure
health signal.
*/
package health
