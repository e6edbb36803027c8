/*
Package runtime defines the narrow interface baliusd needs from the
out-of-scope WASM host runtime: registering/removing workers and
dispatching JSON-RPC requests into them. The real runtime embeds a WASM
engine and the chain-sync driver; baliusd only needs to register
workers and forward requests into it, so that surface is all this
interface exposes.
*/
package runtime
