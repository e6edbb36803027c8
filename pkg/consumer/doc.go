/*
Package consumer maintains the edge proxy's refreshable api_key →
Consumer mapping (C8), grounded on the spec's "Consumer lookup" section
and the original proxy's State.get_consumer. A Consumer is derived from a
BaliusWorker CRD: its key is the worker's auth token, and its network and
tier come straight from the worker's spec.

The registry itself is read-mostly in the request path (Get takes an
RWMutex read lock) and is refreshed wholesale on an interval by a
background goroutine that re-lists Source and swaps the map under a write
lock, so a Source outage degrades to serving the last-known table rather
than failing lookups outright.
*/
package consumer
