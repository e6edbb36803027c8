/*
Package rpcserver implements baliusd's per-tenant JSON-RPC HTTP server
(C7): a single POST route per worker ID that decodes a {id, method,
params} envelope, dispatches it into the runtime, and translates the
runtime's Response variant into the JSON body the caller expects.

A worker that failed registration never reaches the runtime at all: its
recorded reason from pkg/registry.FailedWorkers is returned as the
response's error field directly, matching the original balius instance's
server, which checks FailedWorkers before parsing the request body.

The server always replies with HTTP 200 and a JSON body, using the body's
own error field to signal failure, a deliberate continuation of the
original warp handler's behavior rather than a Go-idiomatic status-code
scheme: callers of this API already expect that shape.
*/
package rpcserver
