/*
Package signer lets WASM workers create ed25519 signing keys and sign
payloads with them, backed by Vault's transit secrets engine. Each
worker's keys are namespaced as "<worker_id>-<key_name>" so no worker can
sign with another's key.

A background token-renewal loop keeps the Vault client's token alive for
the lifetime of the process; it runs until its context is cancelled.
*/
package signer
