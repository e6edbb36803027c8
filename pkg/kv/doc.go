/*
Package kv is the per-worker key/value store WASM workers call through the
runtime's host functions: Get, Set, and List-by-prefix, each scoped by
worker ID so no worker can read or overwrite another's keys.

Backed by a single Postgres table keyed on (worker, key); List performs a
prefix LIKE scan ordered by key.
*/
package kv
