/*
Package logsink buffers the application log lines WASM workers emit
through the runtime's logging host function and flushes them to Postgres
in batches, rather than issuing one INSERT per log call.

A BatchLogger accumulates LogRows in memory and flushes when the buffer
reaches its threshold (1024 rows by default) or when Flush is called
explicitly (e.g. on shutdown). A failed flush clears the buffer anyway:
losing a batch of worker log lines is preferable to an unbounded memory
leak from retrying indefinitely.
*/
package logsink
