/*
Package proxy implements baliusd's edge proxy (C8): a single chi router in
front of every shard, responsible for turning an incoming dmtr-api-key (or
host-embedded key) into a Consumer, rate limiting it against its tier, and
forwarding the request to the right shard's JSON-RPC server.

It is grounded on the original proxy crate's BaliusProxy: request_filter
short-circuits OPTIONS preflight and the configured health path, extracts
the consumer key from the dmtr-api-key header or the request's host
(falling back to one another exactly as extract_key does), looks the
consumer up in a consumer.Registry, and rejects with 401 when none is
found or 429 when ratelimit.Limiter reports the consumer has exceeded
their tier. A consumer that passes both checks is forwarded to
balius-{network}.{dns}:{port} via net/http/httputil.ReverseProxy, the
standard library's reverse proxy and the idiomatic Go choice for this —
there's no teacher or pack precedent for a hand-rolled one, and pingora's
request_filter/upstream_peer split this package mirrors maps directly
onto it.
*/
package proxy
